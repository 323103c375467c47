package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/auth"
	apperrors "storefront/internal/errors"
	"storefront/internal/mail"
	"storefront/internal/model"
)

// fakeUserStore is an in-memory UserRepository with the same contract as
// the GORM-backed one: unique emails, expiry comparison on reset lookups,
// and a single write for the password replace.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	// mirrors the BeforeCreate hook
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.ResetToken = &token
		u.ResetTokenExpiry = &expiry
	}
	return nil
}

func (f *fakeUserStore) ReplacePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
		u.ResetToken = nil
		u.ResetTokenExpiry = nil
	}
	return nil
}

func (f *fakeUserStore) current(id uuid.UUID) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *f.users[id]
	return &cp
}

// captureMailer records outbound messages instead of sending them.
type captureMailer struct {
	sent []mail.Message
	err  error
}

func (m *captureMailer) Send(ctx context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newScenarioServices(t *testing.T) (*fakeUserStore, *captureMailer, SessionService, *resetService) {
	t.Helper()
	store := newFakeUserStore()
	mailer := &captureMailer{}
	issuer := auth.NewTokenIssuer("scenario-secret")
	hasher := auth.NewPasswordHasher()
	sessions := NewSessionService(store, hasher, issuer)
	resets := NewResetService(store, hasher, issuer, mailer, "no-reply@storefront.local", "http://frontend.local").(*resetService)
	return store, mailer, sessions, resets
}

func TestScenario_SignupThenSignin(t *testing.T) {
	ctx := context.Background()
	_, _, sessions, _ := newScenarioServices(t)

	user, token, err := sessions.Signup(ctx, "A@x.com", "secret1", "Anna")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEmpty(t, token)

	// the observable user record never exposes the password hash
	payload, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), user.PasswordHash)
	assert.NotContains(t, string(payload), "password")

	_, _, err = sessions.Signin(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	again, _, err := sessions.Signin(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestScenario_FullResetFlow(t *testing.T) {
	ctx := context.Background()
	store, mailer, sessions, resets := newScenarioServices(t)

	user, _, err := sessions.Signup(ctx, "a@x.com", "secret1", "Anna")
	require.NoError(t, err)

	_, err = resets.RequestReset(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	record := store.current(user.ID)
	require.NotNil(t, record.ResetToken)
	require.NotNil(t, record.ResetTokenExpiry)
	assert.Contains(t, mailer.sent[0].HTML, *record.ResetToken)

	updated, token, err := resets.ResetPassword(ctx, *record.ResetToken, "new1", "new1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, updated.ID)
	assert.NotEmpty(t, token)

	// both reset fields are cleared by the same write that set the hash
	record = store.current(user.ID)
	assert.Nil(t, record.ResetToken)
	assert.Nil(t, record.ResetTokenExpiry)

	_, _, err = sessions.Signin(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = sessions.Signin(ctx, "a@x.com", "new1")
	require.NoError(t, err)
}

func TestScenario_GarbageResetToken(t *testing.T) {
	ctx := context.Background()
	_, _, sessions, resets := newScenarioServices(t)

	_, _, err := sessions.Signup(ctx, "a@x.com", "secret1", "Anna")
	require.NoError(t, err)

	_, _, err = resets.ResetPassword(ctx, "garbage", "new1", "new1")
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestScenario_SecondResetRequestInvalidatesFirstToken(t *testing.T) {
	ctx := context.Background()
	store, _, sessions, resets := newScenarioServices(t)

	user, _, err := sessions.Signup(ctx, "a@x.com", "secret1", "Anna")
	require.NoError(t, err)

	_, err = resets.RequestReset(ctx, "a@x.com")
	require.NoError(t, err)
	t1 := *store.current(user.ID).ResetToken

	_, err = resets.RequestReset(ctx, "a@x.com")
	require.NoError(t, err)
	t2 := *store.current(user.ID).ResetToken
	require.NotEqual(t, t1, t2)

	_, _, err = resets.ResetPassword(ctx, t1, "new1", "new1")
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)

	_, _, err = resets.ResetPassword(ctx, t2, "new1", "new1")
	require.NoError(t, err)
}

func TestScenario_ResetTokenExpiryBoundary(t *testing.T) {
	ctx := context.Background()
	store, _, sessions, resets := newScenarioServices(t)

	user, _, err := sessions.Signup(ctx, "a@x.com", "secret1", "Anna")
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	resets.now = func() time.Time { return base }

	_, err = resets.RequestReset(ctx, "a@x.com")
	require.NoError(t, err)
	token := *store.current(user.ID).ResetToken
	expiry := base.Add(auth.ResetTokenWindow)

	// one second before expiry the token still redeems
	resets.now = func() time.Time { return expiry.Add(-time.Second) }
	_, _, err = resets.ResetPassword(ctx, token, "new1", "new1")
	require.NoError(t, err)

	// a fresh token used one second past expiry fails
	resets.now = func() time.Time { return base }
	_, err = resets.RequestReset(ctx, "a@x.com")
	require.NoError(t, err)
	token = *store.current(user.ID).ResetToken

	resets.now = func() time.Time { return expiry.Add(time.Second) }
	_, _, err = resets.ResetPassword(ctx, token, "new2", "new2")
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestScenario_DeliveryFailureLeavesTokenUsable(t *testing.T) {
	ctx := context.Background()
	store, mailer, sessions, resets := newScenarioServices(t)

	user, _, err := sessions.Signup(ctx, "a@x.com", "secret1", "Anna")
	require.NoError(t, err)

	mailer.err = apperrors.ErrMailDelivery
	_, err = resets.RequestReset(ctx, "a@x.com")
	assert.ErrorIs(t, err, apperrors.ErrMailDelivery)

	// token persisted despite the failed send; support can hand it out
	record := store.current(user.ID)
	require.NotNil(t, record.ResetToken)
	_, _, err = resets.ResetPassword(ctx, *record.ResetToken, "new1", "new1")
	require.NoError(t, err)
}
