package natskv

import "context"

func (s *Store) DeleteRevision(ctx context.Context, key string, rev uint64) error {
	return s.deleteRevision(ctx, key, rev)
}

func (s *Store) Revision(ctx context.Context, key string) (uint64, error) {
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return entry.Revision(), nil
}
