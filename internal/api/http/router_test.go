package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/tourism-service/internal/api/http/handlers"
	"github.com/spec-kit/tourism-service/internal/auth"
	"github.com/spec-kit/tourism-service/internal/config"
	"github.com/spec-kit/tourism-service/internal/domain"
	"github.com/spec-kit/tourism-service/internal/observability"
	"github.com/spec-kit/tourism-service/internal/service"
)

const testSecret = "test-secret"

// fakeUserRepo is an in-memory UserRepository that counts storage
// round-trips so tests can assert the guards short-circuit before storage.
type fakeUserRepo struct {
	mu      sync.Mutex
	nextID  int
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	calls   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) seed(email string, role domain.Role) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("user-%d", f.nextID)
	user := &domain.User{Name: email, Email: email, Role: role, CreatedAt: time.Now()}
	f.byID[id] = user
	f.byEmail[email] = user
	return id
}

func (f *fakeUserRepo) storageCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	users := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) Insert(ctx context.Context, user *domain.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.nextID++
	id := fmt.Sprintf("user-%d", f.nextID)
	f.byID[id] = user
	f.byEmail[user.Email] = user
	return id, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id string, role domain.Role) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	user, ok := f.byID[id]
	if !ok {
		return 0, 0, nil
	}
	user.Role = role
	return 1, 1, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	user, ok := f.byID[id]
	if !ok {
		return 0, nil
	}
	delete(f.byID, id)
	delete(f.byEmail, user.Email)
	return 1, nil
}

func (f *fakeUserRepo) ResolveRole(ctx context.Context, email string) (domain.Role, error) {
	user, err := f.GetByEmail(ctx, email)
	if err != nil {
		return domain.RoleNone, err
	}
	if user == nil {
		return domain.RoleNone, nil
	}
	return user.Role, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int
	bookings map[string]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*domain.Booking{}}
}

func (f *fakeBookingRepo) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Booking, 0)
	for _, b := range f.bookings {
		if b.Email == email {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) Insert(ctx context.Context, booking *domain.Booking) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("booking-%d", f.nextID)
	f.bookings[id] = booking
	return id, nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[id]; !ok {
		return 0, nil
	}
	delete(f.bookings, id)
	return 1, nil
}

type fakeWishlistRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[string]*domain.WishlistItem
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{items: map[string]*domain.WishlistItem{}}
}

func (f *fakeWishlistRepo) ListByEmail(ctx context.Context, email string) ([]domain.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.WishlistItem, 0)
	for _, item := range f.items {
		if item.Email == email {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeWishlistRepo) GetByID(ctx context.Context, id string) (*domain.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id], nil
}

func (f *fakeWishlistRepo) Insert(ctx context.Context, item *domain.WishlistItem) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("wish-%d", f.nextID)
	f.items[id] = item
	return id, nil
}

func (f *fakeWishlistRepo) Delete(ctx context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return 0, nil
	}
	delete(f.items, id)
	return 1, nil
}

type fakePackageRepo struct{ packages []domain.Package }

func (f *fakePackageRepo) List(ctx context.Context) ([]domain.Package, error) {
	return f.packages, nil
}

func (f *fakePackageRepo) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	return nil, nil
}

type fakeGuideRepo struct{ guides []domain.Guide }

func (f *fakeGuideRepo) List(ctx context.Context) ([]domain.Guide, error) {
	return f.guides, nil
}

type fakeStoryRepo struct {
	mu      sync.Mutex
	nextID  int
	stories map[string]*domain.Story
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{stories: map[string]*domain.Story{}}
}

func (f *fakeStoryRepo) List(ctx context.Context) ([]domain.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Story, 0)
	for _, s := range f.stories {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStoryRepo) GetByID(ctx context.Context, id string) (*domain.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stories[id], nil
}

func (f *fakeStoryRepo) Insert(ctx context.Context, story *domain.Story) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("story-%d", f.nextID)
	f.stories[id] = story
	return id, nil
}

type testEnv struct {
	app      *fiber.App
	auth     *service.AuthService
	users    *fakeUserRepo
	bookings *fakeBookingRepo
	wishlist *fakeWishlistRepo
	stories  *fakeStoryRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	wishlist := newFakeWishlistRepo()
	stories := newFakeStoryRepo()
	logger := zap.NewNop()

	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: testSecret, AccessTokenTTLMinutes: 60}}
	authService := service.NewAuthService(cfg, users)
	userService := service.NewUserService(users, nil, logger)
	catalogService := service.NewCatalogService(&fakePackageRepo{}, &fakeGuideRepo{}, stories, nil, 0, nil, logger)
	tripService := service.NewTripService(bookings, wishlist, nil, logger)

	app := fiber.New(fiber.Config{UnescapePath: true})
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService, authService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Trips:          handlers.NewTripsHandler(tripService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
		Roles:          users,
	})

	return &testEnv{app: app, auth: authService, users: users, bookings: bookings, wishlist: wishlist, stories: stories}
}

func (e *testEnv) token(t *testing.T, email string, role domain.Role) string {
	t.Helper()
	token, _, err := e.auth.IssueToken(email, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (e *testEnv) do(t *testing.T, method, target, token string, body any) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, target, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *nethttp.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestAdminRouteWithoutTokenShortCircuits(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, nethttp.MethodGet, "/users", "", nil)
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if calls := env.users.storageCalls(); calls != 0 {
		t.Fatalf("expected zero storage calls, got %d", calls)
	}
}

func TestExpiredTokenIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@x.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	resp := env.do(t, nethttp.MethodGet, "/users", signed, nil)
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if calls := env.users.storageCalls(); calls != 0 {
		t.Fatalf("expected zero storage calls, got %d", calls)
	}
}

func TestAdminRouteRejectsNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.users.seed("a@x.com", domain.RoleTraveler)

	token := env.token(t, "a@x.com", domain.RoleTraveler)
	resp := env.do(t, nethttp.MethodGet, "/users", token, nil)
	if resp.StatusCode != nethttp.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestAdminRoleClaimInTokenIsNotTrusted(t *testing.T) {
	env := newTestEnv(t)
	env.users.seed("a@x.com", domain.RoleTraveler)

	// Inflated role claim at issuance; the stored role wins.
	token := env.token(t, "a@x.com", domain.RoleAdmin)
	resp := env.do(t, nethttp.MethodGet, "/users", token, nil)
	if resp.StatusCode != nethttp.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSelfOnlyRouteRejectsMismatch(t *testing.T) {
	env := newTestEnv(t)
	env.users.seed("b@x.com", domain.RoleAdmin)

	token := env.token(t, "a@x.com", domain.RoleTraveler)
	resp := env.do(t, nethttp.MethodGet, "/users/admin/b@x.com", token, nil)
	if resp.StatusCode != nethttp.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSelfOnlyRouteReportsStoredRole(t *testing.T) {
	env := newTestEnv(t)
	env.users.seed("a@x.com", domain.RoleAdmin)

	token := env.token(t, "a@x.com", domain.RoleTraveler)
	resp := env.do(t, nethttp.MethodGet, "/users/admin/a@x.com", token, nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Admin bool `json:"admin"`
	}
	decodeBody(t, resp, &body)
	if !body.Admin {
		t.Fatalf("expected stored admin role to be reported")
	}
}

func TestSelfOnlyRouteAcceptsEncodedEmail(t *testing.T) {
	env := newTestEnv(t)
	env.users.seed("a@x.com", domain.RoleAdmin)

	token := env.token(t, "a@x.com", domain.RoleTraveler)
	resp := env.do(t, nethttp.MethodGet, "/users/admin/a%40x.com", token, nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200 for the caller's own encoded email, got %d", resp.StatusCode)
	}
	var body struct {
		Admin bool `json:"admin"`
	}
	decodeBody(t, resp, &body)
	if !body.Admin {
		t.Fatalf("expected the stored role to be reported for the decoded email")
	}
}

func TestRegistrationIsIdempotentByEmail(t *testing.T) {
	env := newTestEnv(t)

	first := env.do(t, nethttp.MethodPost, "/users", "", fiber.Map{"name": "A", "email": "a@x.com"})
	if first.StatusCode != nethttp.StatusCreated {
		t.Fatalf("expected 201, got %d", first.StatusCode)
	}
	var created struct {
		InsertedID *string `json:"insertedId"`
	}
	decodeBody(t, first, &created)
	if created.InsertedID == nil || *created.InsertedID == "" {
		t.Fatalf("expected an inserted id on first registration")
	}

	second := env.do(t, nethttp.MethodPost, "/users", "", fiber.Map{"name": "A", "email": "a@x.com"})
	if second.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", second.StatusCode)
	}
	var dup struct {
		InsertedID *string `json:"insertedId"`
		Message    string  `json:"message"`
	}
	decodeBody(t, second, &dup)
	if dup.InsertedID != nil {
		t.Fatalf("expected null insertedId on duplicate registration")
	}
	if dup.Message == "" {
		t.Fatalf("expected an already-exists message")
	}
	if len(env.users.byEmail) != 1 {
		t.Fatalf("expected exactly one stored record, got %d", len(env.users.byEmail))
	}
}

func TestBookingListingIsOwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	_, _ = env.bookings.Insert(context.Background(), &domain.Booking{Email: "a@x.com", PackageTitle: "Reef Dive"})
	_, _ = env.bookings.Insert(context.Background(), &domain.Booking{Email: "b@x.com", PackageTitle: "Summit Hike"})

	resp := env.do(t, nethttp.MethodGet, "/bookings?email=a@x.com", "", nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var bookings []domain.Booking
	decodeBody(t, resp, &bookings)
	if len(bookings) != 1 {
		t.Fatalf("expected one booking, got %d", len(bookings))
	}
	if bookings[0].Email != "a@x.com" {
		t.Fatalf("listing leaked a booking owned by %q", bookings[0].Email)
	}
}

func TestWishlistDeleteRemovesEntry(t *testing.T) {
	env := newTestEnv(t)
	id, _ := env.wishlist.Insert(context.Background(), &domain.WishlistItem{Email: "a@x.com", PackageTitle: "Reef Dive"})

	resp := env.do(t, nethttp.MethodDelete, "/wishlist/"+id, "", nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	decodeBody(t, resp, &body)
	if body.DeletedCount != 1 {
		t.Fatalf("expected deletedCount 1, got %d", body.DeletedCount)
	}
	if len(env.wishlist.items) != 0 {
		t.Fatalf("expected the entry to be removed, %d remain", len(env.wishlist.items))
	}
}

func TestStoryCreationRequiresAuthAndStampsAuthor(t *testing.T) {
	env := newTestEnv(t)

	body := fiber.Map{"title": "Lost in Kyoto", "content": "...", "authorEmail": "forged@x.com"}
	resp := env.do(t, nethttp.MethodPost, "/stories", "", body)
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", resp.StatusCode)
	}

	token := env.token(t, "a@x.com", domain.RoleTraveler)
	resp = env.do(t, nethttp.MethodPost, "/stories", token, body)
	if resp.StatusCode != nethttp.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	for _, story := range env.stories.stories {
		if story.AuthorEmail != "a@x.com" {
			t.Fatalf("expected author stamped from token, got %q", story.AuthorEmail)
		}
	}
}

func TestPromoteThenDeleteScenario(t *testing.T) {
	env := newTestEnv(t)
	travelerID := env.users.seed("a@x.com", domain.RoleTraveler)
	targetID := env.users.seed("victim@x.com", domain.RoleTraveler)
	env.users.seed("root@x.com", domain.RoleAdmin)

	travelerToken := env.token(t, "a@x.com", domain.RoleTraveler)
	resp := env.do(t, nethttp.MethodDelete, "/users/"+targetID, travelerToken, nil)
	if resp.StatusCode != nethttp.StatusForbidden {
		t.Fatalf("expected 403 for traveler delete, got %d", resp.StatusCode)
	}

	adminToken := env.token(t, "root@x.com", domain.RoleAdmin)
	resp = env.do(t, nethttp.MethodPatch, "/users/admin/"+travelerID, adminToken, nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200 for promotion, got %d", resp.StatusCode)
	}

	// Reissued token carries the same claims; the fresh role lookup is what
	// changes the outcome.
	promotedToken := env.token(t, "a@x.com", domain.RoleTraveler)
	resp = env.do(t, nethttp.MethodDelete, "/users/"+targetID, promotedToken, nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200 after promotion, got %d", resp.StatusCode)
	}
	var body struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	decodeBody(t, resp, &body)
	if body.DeletedCount != 1 {
		t.Fatalf("expected deletedCount 1, got %d", body.DeletedCount)
	}
}

func TestTokenIssuanceEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, nethttp.MethodPost, "/auth/token", "", fiber.Map{"email": "a@x.com", "role": "traveler"})
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	if body.Token == "" {
		t.Fatalf("expected a token")
	}

	missing := env.do(t, nethttp.MethodPost, "/auth/token", "", fiber.Map{"role": "traveler"})
	if missing.StatusCode != nethttp.StatusBadRequest {
		t.Fatalf("expected 400 without an email, got %d", missing.StatusCode)
	}
}
