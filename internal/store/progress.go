package store

import "encoding/binary"

// Progress marker keys in the untyped root tree. These exist purely to
// choose where to resume indexing after a restart.
var (
	keyLastHeadBlock         = []byte("last_head_block")
	keyLastBatchBlock        = []byte("last_batch_block")
	keyBatchIndexingComplete = []byte("batch_indexing_complete")
)

func (s *Store) putUint32(key []byte, v uint32) error {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return s.Put("root", key, b)
}

func (s *Store) getUint32(key []byte) (uint32, bool, error) {
	v, err := s.Get("root", key)
	if err == ErrNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(v) != 4 {
		return 0, false, nil
	}
	return binary.BigEndian.Uint32(v), true, nil
}

// SetLastHeadBlock records the highest block seen on the live stream.
func (s *Store) SetLastHeadBlock(block uint32) error {
	return s.putUint32(keyLastHeadBlock, block)
}

// LastHeadBlock returns the last recorded head block, if any.
func (s *Store) LastHeadBlock() (uint32, bool, error) {
	return s.getUint32(keyLastHeadBlock)
}

// SetLastBatchBlock checkpoints the backfill head.
func (s *Store) SetLastBatchBlock(block uint32) error {
	return s.putUint32(keyLastBatchBlock, block)
}

// LastBatchBlock returns the last checkpointed backfill block, if any.
func (s *Store) LastBatchBlock() (uint32, bool, error) {
	return s.getUint32(keyLastBatchBlock)
}

// SetBatchIndexingComplete records that the backfiller has caught up to the
// head-follower's start block.
func (s *Store) SetBatchIndexingComplete(done bool) error {
	v := byte(0)
	if done {
		v = 1
	}
	return s.Put("root", keyBatchIndexingComplete, []byte{v})
}

// BatchIndexingComplete reports the flag's current value (false if unset).
func (s *Store) BatchIndexingComplete() (bool, error) {
	v, err := s.Get("root", keyBatchIndexingComplete)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(v) == 1 && v[0] == 1, nil
}
