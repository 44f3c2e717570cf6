package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_storefront/internal/models"
	"github.com/GTDGit/gtd_storefront/internal/sse"
	"github.com/GTDGit/gtd_storefront/internal/state"
	"github.com/GTDGit/gtd_storefront/internal/utils"
)

type fakeCatalog struct {
	mu      sync.Mutex
	product *models.Product
	err     error
	created []models.ProductPayload
	updated map[int]models.ProductPayload
	release chan struct{}
	entered chan struct{}
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.product
	p.ID = id
	return &p, nil
}

func (f *fakeCatalog) CreateProduct(_ context.Context, payload models.ProductPayload) (*models.Product, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, payload)
	return &models.Product{ID: 195, Title: payload.Title}, nil
}

func (f *fakeCatalog) UpdateProduct(_ context.Context, id int, payload models.ProductPayload) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.updated == nil {
		f.updated = map[int]models.ProductPayload{}
	}
	f.updated[id] = payload
	return &models.Product{ID: id, Title: payload.Title}, nil
}

type fakeSubmitter struct {
	mu     sync.Mutex
	busy   bool
	toasts []sse.Toast
}

func (s *fakeSubmitter) BeginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *fakeSubmitter) EndSubmit() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *fakeSubmitter) Toast(kind, message string) {
	s.mu.Lock()
	s.toasts = append(s.toasts, sse.Toast{Kind: kind, Message: message})
	s.mu.Unlock()
}

func validForm() models.ProductForm {
	return models.ProductForm{
		Title:       "Phone",
		Description: "A phone",
		Price:       " 99.5 ",
		Stock:       "3",
		Brand:       "Acme",
		Category:    "smartphones",
	}
}

func TestLogin(t *testing.T) {
	svc := NewAuthService()
	session := state.NewSessionStore(nil)

	_, err := svc.Login(session, "alice", "")
	assert.ErrorIs(t, err, utils.ErrMissingCredentials)
	_, err = svc.Login(session, "", "secret")
	assert.ErrorIs(t, err, utils.ErrMissingCredentials)
	assert.False(t, session.IsAuthenticated())

	msg, err := svc.Login(session, "alice", "anything")
	require.NoError(t, err)
	assert.Equal(t, "Welcome, alice!", msg)
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "alice", session.Username())

	svc.Logout(session)
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Username())
}

func TestParseNumber(t *testing.T) {
	for in, want := range map[string]float64{
		"":      0,
		"   ":   0,
		"12":    12,
		" 4.5 ": 4.5,
		"1e3":   1000,
		"-2":    -2,
	} {
		got, err := ParseNumber(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"abc", "12abc", "Infinity", "NaN"} {
		_, err := ParseNumber(in)
		assert.ErrorIs(t, err, utils.ErrInvalidNumber, in)
	}
}

func TestToPayload(t *testing.T) {
	payload, err := ToPayload(validForm())
	require.NoError(t, err)
	assert.Equal(t, models.ProductPayload{
		Title:       "Phone",
		Description: "A phone",
		Price:       99.5,
		Stock:       3,
		Brand:       "Acme",
		Category:    "smartphones",
		Thumbnail:   models.PlaceholderThumbnail,
	}, payload)

	form := validForm()
	form.Image = "https://img/x.png"
	payload, err = ToPayload(form)
	require.NoError(t, err)
	assert.Equal(t, "https://img/x.png", payload.Thumbnail)

	form.Stock = "lots"
	_, err = ToPayload(form)
	assert.ErrorIs(t, err, utils.ErrInvalidNumber)
}

func TestCreate(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := NewProductFormService(catalog)
	ws := &fakeSubmitter{}

	res, err := svc.Create(context.Background(), ws, validForm())
	require.NoError(t, err)
	assert.Equal(t, "/", res.Redirect)
	assert.Equal(t, MsgProductAdded, res.Message)
	require.Len(t, catalog.created, 1)
	assert.Equal(t, 99.5, catalog.created[0].Price)
	assert.Equal(t, []sse.Toast{{Kind: sse.ToastSuccess, Message: MsgProductAdded}}, ws.toasts)
	assert.True(t, ws.BeginSubmit(), "slot released")
}

func TestCreateFailure(t *testing.T) {
	svc := NewProductFormService(&fakeCatalog{err: errors.New("boom")})
	ws := &fakeSubmitter{}

	_, err := svc.Create(context.Background(), ws, validForm())
	assert.ErrorIs(t, err, utils.ErrSubmitFailed)
	assert.Equal(t, []sse.Toast{{Kind: sse.ToastError, Message: MsgProductAddFailed}}, ws.toasts)
	assert.True(t, ws.BeginSubmit(), "slot released")
}

func TestCreateInvalidNumberSendsNothing(t *testing.T) {
	catalog := &fakeCatalog{}
	ws := &fakeSubmitter{}
	form := validForm()
	form.Price = "cheap"

	_, err := NewProductFormService(catalog).Create(context.Background(), ws, form)
	assert.ErrorIs(t, err, utils.ErrInvalidNumber)
	assert.Empty(t, catalog.created)
	assert.Empty(t, ws.toasts)
}

func TestPendingGuardRejectsSecondSubmit(t *testing.T) {
	catalog := &fakeCatalog{entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewProductFormService(catalog)
	ws := &fakeSubmitter{}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Create(context.Background(), ws, validForm())
		done <- err
	}()
	<-catalog.entered

	_, err := svc.Create(context.Background(), ws, validForm())
	assert.ErrorIs(t, err, utils.ErrSubmitPending)

	close(catalog.release)
	require.NoError(t, <-done)
	assert.Len(t, catalog.created, 1)
}

func TestUpdate(t *testing.T) {
	catalog := &fakeCatalog{}
	ws := &fakeSubmitter{}

	res, err := NewProductFormService(catalog).Update(context.Background(), ws, 5, validForm())
	require.NoError(t, err)
	assert.Equal(t, "/product/5", res.Redirect)
	assert.Equal(t, MsgProductUpdated, res.Message)
	assert.Equal(t, "Phone", catalog.updated[5].Title)
	assert.Equal(t, []sse.Toast{{Kind: sse.ToastSuccess, Message: MsgProductUpdated}}, ws.toasts)
}

func TestUpdateFailure(t *testing.T) {
	ws := &fakeSubmitter{}
	_, err := NewProductFormService(&fakeCatalog{err: errors.New("boom")}).Update(context.Background(), ws, 5, validForm())
	assert.ErrorIs(t, err, utils.ErrSubmitFailed)
	assert.Equal(t, []sse.Toast{{Kind: sse.ToastError, Message: MsgProductUpdFailed}}, ws.toasts)
}

func TestPrefill(t *testing.T) {
	catalog := &fakeCatalog{product: &models.Product{
		Title:       "Laptop",
		Description: "Fast",
		Price:       1200.5,
		Brand:       "Acme",
		Category:    "laptops",
		Image:       "img.png",
		Thumbnail:   "thumb.png",
	}}

	form, err := NewProductFormService(catalog).Prefill(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, models.ProductForm{
		Title:       "Laptop",
		Description: "Fast",
		Price:       "1200.5",
		Stock:       "",
		Brand:       "Acme",
		Category:    "laptops",
		Image:       "thumb.png",
	}, *form)

	catalog.err = errors.New("down")
	_, err = NewProductFormService(catalog).Prefill(context.Background(), 9)
	assert.ErrorIs(t, err, utils.ErrProductUnavailable)
}

func TestProductDetail(t *testing.T) {
	catalog := &fakeCatalog{product: &models.Product{Title: "Laptop"}}
	svc := NewProductDetailService(catalog)

	p, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)

	catalog.err = errors.New("down")
	_, err = svc.Get(context.Background(), 3)
	assert.ErrorIs(t, err, utils.ErrProductUnavailable)
}
