package jsonfile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preocrypto/trading-backend/internal/models"
)

func newStorage(t *testing.T) *Storage {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "db.json"))
}

func TestLoad_MissingFile(t *testing.T) {
	s := newStorage(t)

	doc := s.Load()
	require.NotNil(t, doc)
	assert.Empty(t, doc.Users)
	assert.NotNil(t, doc.Tokens)
	assert.NotNil(t, doc.ResetCodes)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	doc := New(path).Load()
	require.NotNil(t, doc)
	assert.Empty(t, doc.Users)
}

func TestLoad_PartialDocument(t *testing.T) {
	// Старые файлы db.json могут не содержать части коллекций.
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users":{"alice":{"username":"alice","password":"pw"}}}`), 0644))

	doc := New(path).Load()
	require.Contains(t, doc.Users, "alice")
	assert.NotNil(t, doc.Tokens)
	assert.NotNil(t, doc.Withdrawals)
	assert.NotNil(t, doc.Transactions)
	assert.NotNil(t, doc.ResetCodes)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	s := newStorage(t)

	doc := models.NewDocument()
	doc.Users["alice"] = &models.User{Username: "alice", Password: "pw", DemoBalance: 10000}
	doc.Payments = append(doc.Payments, json.RawMessage(`{"provider":"legacy","ref":42}`))
	require.NoError(t, s.Save(doc))

	got := s.Load()
	require.Contains(t, got.Users, "alice")
	assert.Equal(t, 10000.0, got.Users["alice"].DemoBalance)
	require.Len(t, got.Payments, 1)
	assert.JSONEq(t, `{"provider":"legacy","ref":42}`, string(got.Payments[0]))
}

func TestSaveLoad_Idempotent(t *testing.T) {
	s := newStorage(t)

	doc := models.NewDocument()
	doc.Users["alice"] = &models.User{Username: "alice", Password: "pw", DemoBalance: 10000}
	doc.Tokens = append(doc.Tokens, models.TokenRecord{Token: "tok", Username: "alice"})
	require.NoError(t, s.Save(doc))

	// save(load()) не меняет содержимое документа
	require.NoError(t, s.Save(s.Load()))

	got := s.Load()
	assert.Equal(t, doc.Users["alice"], got.Users["alice"])
	assert.Equal(t, doc.Tokens, got.Tokens)
}

func TestUpdate_PersistsChanges(t *testing.T) {
	s := newStorage(t)

	err := s.Update(func(doc *models.Document) error {
		doc.Users["bob"] = &models.User{Username: "bob", DemoBalance: 10000}
		return nil
	})
	require.NoError(t, err)

	got := s.Load()
	assert.Contains(t, got.Users, "bob")
}

func TestUpdate_ErrorLeavesFileUntouched(t *testing.T) {
	s := newStorage(t)
	require.NoError(t, s.Update(func(doc *models.Document) error {
		doc.Users["alice"] = &models.User{Username: "alice"}
		return nil
	}))

	wantErr := errors.New("rejected")
	err := s.Update(func(doc *models.Document) error {
		doc.Users["mallory"] = &models.User{Username: "mallory"}
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	got := s.Load()
	assert.Contains(t, got.Users, "alice")
	assert.NotContains(t, got.Users, "mallory")
}

func TestView_DoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s := New(path)

	err := s.View(func(doc *models.Document) error {
		doc.Users["alice"] = &models.User{Username: "alice"}
		return nil
	})
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUpdate_ConcurrentIncrements(t *testing.T) {
	s := newStorage(t)
	require.NoError(t, s.Update(func(doc *models.Document) error {
		doc.Users["alice"] = &models.User{Username: "alice"}
		return nil
	}))

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = s.Update(func(doc *models.Document) error {
				doc.Users["alice"].DemoBalance++
				return nil
			})
		}()
	}
	wg.Wait()

	got := s.Load()
	assert.Equal(t, float64(n), got.Users["alice"].DemoBalance)
}
