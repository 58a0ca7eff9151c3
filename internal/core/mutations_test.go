package core

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/view"
)

// fakeCatalog is an in-memory Catalog. Each *Err field, when set, is returned
// by the matching call.
type fakeCatalog struct {
	mu       sync.Mutex
	products []catalog.Product
	nextID   int

	listErr   error
	updateErr error
	createErr error

	listCalls int
	updates   []catalog.UpdateFields
	creates   []catalog.CreateFields
}

func (f *fakeCatalog) List(context.Context) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.products), nil
}

func (f *fakeCatalog) Update(_ context.Context, id int, fields catalog.UpdateFields) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, fields)
	if f.updateErr != nil {
		return catalog.Product{}, f.updateErr
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Title = fields.Title
			f.products[i].Price = decimal.NewFromInt(fields.Price)
			f.products[i].Description = fields.Description
			return f.products[i], nil
		}
	}
	return catalog.Product{}, &catalog.NetworkError{Op: "update", StatusCode: 404}
}

func (f *fakeCatalog) Create(_ context.Context, fields catalog.CreateFields) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, fields)
	if f.createErr != nil {
		return catalog.Product{}, f.createErr
	}
	if f.nextID == 0 {
		f.nextID = 100
	}
	p := catalog.Product{
		ID:          f.nextID,
		Title:       fields.Title,
		Price:       decimal.NewFromInt(fields.Price),
		Description: fields.Description,
		Category:    &catalog.Category{ID: fields.CategoryID},
		Images:      fields.Images,
	}
	f.nextID++
	f.products = append(f.products, p)
	return p, nil
}

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Title: "Blue Shirt", Price: decimal.NewFromInt(20)},
		{ID: 2, Title: "Red Hat", Price: decimal.NewFromInt(15)},
		{ID: 3, Title: "Blue Jeans", Price: decimal.NewFromInt(40)},
	}
}

// loadedSession returns a service and a session whose full set came from fake.
func loadedSession(t *testing.T, fake *fakeCatalog) (*Service, *Session, *MemoryAuditStore) {
	t.Helper()
	audit := &MemoryAuditStore{}
	svc := NewService(fake, NewSessions(view.DefaultPageSize, 0), audit)
	sess := svc.Sessions().Create()
	require.NoError(t, svc.EnsureLoaded(context.Background(), sess))
	return svc, sess, audit
}

type snapshot struct {
	Full     []catalog.Product
	Filtered []catalog.Product
	Keyword  string
	Sort     view.Sort
	Page     int
}

func takeSnapshot(sess *Session) snapshot {
	var s snapshot
	sess.Do(func(st *view.State) {
		s = snapshot{st.Full(), st.Filtered(), st.Keyword(), st.Sort(), st.Page()}
	})
	return s
}

func TestEnsureLoaded_FetchesOnce(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc, sess, _ := loadedSession(t, fake)

	require.NoError(t, svc.EnsureLoaded(context.Background(), sess))
	assert.Equal(t, 1, fake.listCalls)
	assert.True(t, sess.Loaded())
}

func TestReload_FailureKeepsLastKnownGood(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc, sess, _ := loadedSession(t, fake)
	before := takeSnapshot(sess)

	fake.listErr = &catalog.NetworkError{Op: "list", Err: errors.New("connection refused")}
	err := svc.Reload(context.Background(), sess)

	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNetwork)
	if diff := cmp.Diff(before, takeSnapshot(sess)); diff != "" {
		t.Errorf("state changed after failed reload (-before +after):\n%s", diff)
	}
}

func TestUpdateProduct_Success(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc, sess, audit := loadedSession(t, fake)
	sess.Do(func(st *view.State) { st.SetKeyword("blue") })

	err := svc.UpdateProduct(context.Background(), sess, 2, ProductForm{
		Title:       "Blue Cap",
		Price:       "18.75",
		Description: "cotton",
		CategoryID:  "5",
		ImageURL:    "https://img.example.com/cap.png",
	})
	require.NoError(t, err)

	require.Len(t, fake.updates, 1)
	assert.Equal(t, catalog.UpdateFields{Title: "Blue Cap", Price: 18, Description: "cotton"}, fake.updates[0])
	assert.Equal(t, 2, fake.listCalls, "update must trigger a full reload")

	var titles []string
	sess.Do(func(st *view.State) {
		for _, p := range st.Filtered() {
			titles = append(titles, p.Title)
		}
	})
	assert.Equal(t, []string{"Blue Shirt", "Blue Cap", "Blue Jeans"}, titles)

	entries, err := audit.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ActionProductUpdate, entries[0].Action)
	assert.Equal(t, OutcomeSuccess, entries[0].Outcome)
	assert.Equal(t, 2, entries[0].ProductID)
	assert.Equal(t, sess.ID.String(), entries[0].SessionID)
}

func TestUpdateProduct_FailureLeavesStateUnchanged(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc, sess, audit := loadedSession(t, fake)
	sess.Do(func(st *view.State) {
		st.SetKeyword("blue")
		require.NoError(t, st.SetSort(view.ColumnPrice))
	})
	before := takeSnapshot(sess)

	fake.updateErr = &catalog.NetworkError{Op: "update", StatusCode: 500, Body: []byte("internal")}
	err := svc.UpdateProduct(context.Background(), sess, 1, ProductForm{Title: "X", Price: "1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNetwork)
	assert.Equal(t, 1, fake.listCalls, "no reload after a failed update")
	if diff := cmp.Diff(before, takeSnapshot(sess)); diff != "" {
		t.Errorf("state changed after failed update (-before +after):\n%s", diff)
	}

	entries, _ := audit.Recent(context.Background(), 10)
	require.Len(t, entries, 1)
	assert.Equal(t, OutcomeFailure, entries[0].Outcome)
	assert.Contains(t, entries[0].Error, "status 500")
}

func TestUpdateProduct_UnknownProduct(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc, sess, _ := loadedSession(t, fake)

	err := svc.UpdateProduct(context.Background(), sess, 99, ProductForm{Title: "X", Price: "1"})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, fake.updates)
}

func TestUpdateProduct_InvalidForm(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc, sess, audit := loadedSession(t, fake)

	err := svc.UpdateProduct(context.Background(), sess, 1, ProductForm{Title: "", Price: "abc"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("title"))
	assert.True(t, verr.Has("price"))
	assert.Empty(t, fake.updates, "invalid form must not reach the catalog")
	entries, _ := audit.Recent(context.Background(), 10)
	assert.Empty(t, entries)
}

func TestUpdateProduct_IgnoresUnsentImage(t *testing.T) {
	products := append(sampleProducts(), catalog.Product{
		ID:     4,
		Title:  "Old Lamp",
		Price:  decimal.NewFromInt(30),
		Images: []string{`["foo.png"]`},
	})
	fake := &fakeCatalog{products: products}
	svc, sess, _ := loadedSession(t, fake)

	var form ProductForm
	sess.Do(func(st *view.State) {
		p, ok := st.Find(4)
		require.True(t, ok)
		form = FormFromProduct(p)
	})
	require.Equal(t, "foo.png", form.ImageURL)
	form.Title = "New Lamp"

	require.NoError(t, svc.UpdateProduct(context.Background(), sess, 4, form))
	require.Len(t, fake.updates, 1)
	assert.Equal(t, catalog.UpdateFields{Title: "New Lamp", Price: 30}, fake.updates[0])
}

func TestCreateProduct_InvalidImage(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc, sess, _ := loadedSession(t, fake)

	_, err := svc.CreateProduct(context.Background(), sess, ProductForm{Title: "Lamp", Price: "3", ImageURL: "foo.png"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("imageUrl"))
	assert.Empty(t, fake.creates)
}

func TestCreateProduct_Success(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc, sess, audit := loadedSession(t, fake)

	created, err := svc.CreateProduct(context.Background(), sess, ProductForm{
		Title: "Green Scarf",
		Price: "9.99",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, created.ID)

	require.Len(t, fake.creates, 1)
	assert.Equal(t, catalog.CreateFields{
		Title:      "Green Scarf",
		Price:      9,
		CategoryID: catalog.DefaultCategoryID,
		Images:     []string{catalog.DefaultCreateImage},
	}, fake.creates[0])

	var found bool
	sess.Do(func(st *view.State) { _, found = st.Find(100) })
	assert.True(t, found, "created product appears after reload")

	entries, _ := audit.Recent(context.Background(), 10)
	require.Len(t, entries, 1)
	assert.Equal(t, ActionProductCreate, entries[0].Action)
	assert.Equal(t, 100, entries[0].ProductID)
}

func TestCreateProduct_RejectedKeepsPayload(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc, sess, _ := loadedSession(t, fake)
	before := takeSnapshot(sess)

	payload := `{"statusCode":400,"message":["categoryId must be a number"]}`
	fake.createErr = &catalog.NetworkError{Op: "create", StatusCode: 400, Body: []byte(payload)}

	_, err := svc.CreateProduct(context.Background(), sess, ProductForm{Title: "A", Price: "1"})
	require.Error(t, err)

	msg := MapError(err)
	assert.Equal(t, "NET003", msg.Code)
	assert.Equal(t, payload, msg.Detail)
	if diff := cmp.Diff(before, takeSnapshot(sess)); diff != "" {
		t.Errorf("state changed after failed create (-before +after):\n%s", diff)
	}
}

func TestCreateProduct_ReloadFailureIsReported(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc, sess, audit := loadedSession(t, fake)
	fake.listErr = &catalog.NetworkError{Op: "list", StatusCode: 503}

	created, err := svc.CreateProduct(context.Background(), sess, ProductForm{Title: "A", Price: "1"})

	require.ErrorIs(t, err, ErrReloadFailed)
	assert.ErrorIs(t, err, catalog.ErrNetwork)
	assert.Equal(t, 100, created.ID, "the create itself succeeded")
	entries, _ := audit.Recent(context.Background(), 10)
	require.Len(t, entries, 1)
	assert.Equal(t, OutcomeSuccess, entries[0].Outcome)
}

type failingAudit struct{ MemoryAuditStore }

func (*failingAudit) Record(context.Context, AuditEntry) error {
	return errors.New("audit database unavailable")
}

func TestCreateProduct_AuditFailureIsSwallowed(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc := NewService(fake, NewSessions(5, 0), &failingAudit{})
	sess := svc.Sessions().Create()

	_, err := svc.CreateProduct(context.Background(), sess, ProductForm{Title: "A", Price: "1"})
	assert.NoError(t, err)
}

func TestMutation_RecordsClientInfo(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	svc, sess, audit := loadedSession(t, fake)

	ctx := ContextWithClient(context.Background(), "203.0.113.7:51234", "test-agent")
	require.NoError(t, svc.UpdateProduct(ctx, sess, 1, ProductForm{Title: "A", Price: "1"}))

	entries, _ := audit.Recent(context.Background(), 1)
	require.Len(t, entries, 1)
	assert.Equal(t, "203.0.113.7", entries[0].IPAddress)
	assert.Equal(t, "test-agent", entries[0].UserAgent)
}
