package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gigforge/gigmatch/internal/config"
	"github.com/gigforge/gigmatch/internal/db"
	"github.com/gigforge/gigmatch/internal/match"
	"github.com/gigforge/gigmatch/internal/types"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu    sync.Mutex
	gigs  map[uuid.UUID]*types.Gig
	users map[uuid.UUID]*db.User

	// forcedErr, when set, is returned by every method to simulate a
	// database outage.
	forcedErr error
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		gigs:  make(map[uuid.UUID]*types.Gig),
		users: make(map[uuid.UUID]*db.User),
	}
}

func (f *fakeStore) addGig(gig *types.Gig) *types.Gig {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gig.ID == uuid.Nil {
		gig.ID = uuid.New()
	}
	if gig.Status == "" {
		gig.Status = types.StatusOpen
	}
	f.gigs[gig.ID] = gig
	return gig
}

func (f *fakeStore) addUser(user *db.User) *db.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeStore) CreateGig(_ context.Context, gig *types.Gig) (uuid.UUID, error) {
	if f.forcedErr != nil {
		return uuid.Nil, f.forcedErr
	}
	gig.Status = types.StatusOpen
	return f.addGig(gig).ID, nil
}

func (f *fakeStore) GetGig(_ context.Context, gigID uuid.UUID) (*types.Gig, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	gig, ok := f.gigs[gigID]
	if !ok {
		return nil, nil
	}
	copied := *gig
	return &copied, nil
}

func (f *fakeStore) ListGigs(_ context.Context, status types.GigStatus) ([]types.Gig, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.Gig
	for _, gig := range f.gigs {
		if status == "" || gig.Status == status {
			out = append(out, *gig)
		}
	}
	return out, nil
}

func (f *fakeStore) ListOpenGigs(ctx context.Context) ([]types.Gig, error) {
	return f.ListGigs(ctx, types.StatusOpen)
}

func (f *fakeStore) ListGigsByCreator(_ context.Context, userID uuid.UUID) ([]types.Gig, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.Gig
	for _, gig := range f.gigs {
		if gig.CreatedBy == userID {
			out = append(out, *gig)
		}
	}
	return out, nil
}

func (f *fakeStore) ListGigsByApplicant(_ context.Context, userID uuid.UUID, limit int) ([]types.Gig, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.Gig
	for _, gig := range f.gigs {
		if containsID(gig.Applicants, userID) || containsID(gig.Team, userID) {
			out = append(out, *gig)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func (f *fakeStore) UpdateGig(_ context.Context, gig *types.Gig) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.gigs[gig.ID]; !ok {
		return fmt.Errorf("gig not found: %s", gig.ID)
	}
	copied := *gig
	f.gigs[gig.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteGig(_ context.Context, gigID uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.gigs, gigID)
	return nil
}

func (f *fakeStore) AddApplicant(_ context.Context, gigID, userID uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	gig, ok := f.gigs[gigID]
	if !ok {
		return fmt.Errorf("gig not found: %s", gigID)
	}
	for _, id := range gig.Applicants {
		if id == userID {
			return nil
		}
	}
	gig.Applicants = append(gig.Applicants, userID)
	return nil
}

func (f *fakeStore) AcceptApplicant(_ context.Context, gigID, userID uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	gig, ok := f.gigs[gigID]
	if !ok {
		return fmt.Errorf("gig not found: %s", gigID)
	}
	if !removeApplicant(gig, userID) {
		return fmt.Errorf("applicant not found: %s", userID)
	}
	gig.Team = append(gig.Team, userID)
	return nil
}

func (f *fakeStore) RejectApplicant(_ context.Context, gigID, userID uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	gig, ok := f.gigs[gigID]
	if !ok {
		return fmt.Errorf("gig not found: %s", gigID)
	}
	if !removeApplicant(gig, userID) {
		return fmt.Errorf("applicant not found: %s", userID)
	}
	return nil
}

func removeApplicant(gig *types.Gig, userID uuid.UUID) bool {
	for i, id := range gig.Applicants {
		if id == userID {
			gig.Applicants = append(gig.Applicants[:i], gig.Applicants[i+1:]...)
			return true
		}
	}
	return false
}

func (f *fakeStore) CountGigsByCreator(_ context.Context, userID uuid.UUID) (int, error) {
	if f.forcedErr != nil {
		return 0, f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, gig := range f.gigs {
		if gig.CreatedBy == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountApplications(_ context.Context, userID uuid.UUID) (int, error) {
	if f.forcedErr != nil {
		return 0, f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, gig := range f.gigs {
		for _, id := range gig.Applicants {
			if id == userID {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeStore) CountCompletedGigs(_ context.Context, userID uuid.UUID) (int, error) {
	if f.forcedErr != nil {
		return 0, f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, gig := range f.gigs {
		if gig.Status != types.StatusCompleted {
			continue
		}
		for _, id := range append(gig.Team, gig.CreatedBy) {
			if id == userID {
				count++
				break
			}
		}
	}
	return count, nil
}

func (f *fakeStore) CreateUser(_ context.Context, username, email, passwordHash string, skills []string) (uuid.UUID, error) {
	if f.forcedErr != nil {
		return uuid.Nil, f.forcedErr
	}
	now := time.Now()
	user := f.addUser(&db.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Skills:       skills,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return user.ID, nil
}

func (f *fakeStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListUsers(_ context.Context) ([]db.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]db.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeStore) ListUsersByIDs(_ context.Context, ids []uuid.UUID) ([]db.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.User
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, user *db.User) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("user not found: %s", user.ID)
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateUserPassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %s", userID)
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, userID uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[userID]; !ok {
		return fmt.Errorf("user not found: %s", userID)
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeStore) Close() {}

// newTestServer builds a Server backed by a fakeStore, with real JWT and
// bcrypt services configured from test env vars.
func newTestServer(t *testing.T) (*Server, *fakeStore) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-for-handler-tests")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")
	t.Setenv("BCRYPT_COST", "10")

	store := newFakeStore()
	s := &Server{
		store:  store,
		engine: match.NewEngine(match.NewMatcher(match.DefaultSynonyms())),
	}

	passwordConfig, err := config.NewPasswordConfig()
	require.NoError(t, err)
	s.userService = NewUserService(store, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	require.NoError(t, err)
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	return s, store
}

// doRequest runs one request through the router and returns the recorder.
func doRequest(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reader = bytes.NewBufferString(raw)
		} else {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewBuffer(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

// authToken returns a valid bearer token for the given user.
func authToken(t *testing.T, s *Server, userID uuid.UUID) string {
	t.Helper()
	token, err := s.jwtService.GenerateToken(userID)
	require.NoError(t, err)
	return token
}

// decodeJSON unmarshals a response body into out.
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
