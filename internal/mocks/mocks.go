package mocks

import (
	"context"
	"strconv"

	"tron/sweeper/internal/models"
	"tron/sweeper/internal/stores"
)

type MockKeyStore struct {
	Addr   string
	Sig    []byte
	Err    error
	Called int
}

func (f *MockKeyStore) Address() string { return f.Addr }

func (f *MockKeyStore) SignHash(ctx context.Context, hash []byte) ([]byte, error) {
	f.Called++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Sig != nil {
		return f.Sig, nil
	}
	return make([]byte, 65), nil
}

type MockJournal struct {
	Records   []*models.RunRecord
	AppendErr error
}

func (f *MockJournal) Append(ctx context.Context, rec *models.RunRecord) error {
	if f.AppendErr != nil {
		return f.AppendErr
	}
	cp := *rec
	cp.ID = strconv.Itoa(len(f.Records) + 1)
	rec.ID = cp.ID
	f.Records = append(f.Records, &cp)
	return nil
}

func (f *MockJournal) Get(ctx context.Context, id string) (*models.RunRecord, error) {
	for _, r := range f.Records {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, stores.ErrRunNotFound
}

func (f *MockJournal) Scan(ctx context.Context, visit func(*models.RunRecord) error) error {
	for _, r := range f.Records {
		cp := *r
		if err := visit(&cp); err != nil {
			return err
		}
	}
	return nil
}

func (f *MockJournal) Close() error { return nil }
