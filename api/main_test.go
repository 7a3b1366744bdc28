package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
	
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jplus/jstore-api/internal/cart"
	db "github.com/jplus/jstore-api/internal/db/sqlc"
	"github.com/jplus/jstore-api/internal/event"
	"github.com/jplus/jstore-api/internal/imageproxy"
	"github.com/jplus/jstore-api/internal/session"
	"github.com/jplus/jstore-api/internal/token"
	"github.com/jplus/jstore-api/internal/util"
	"github.com/jplus/jstore-api/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const (
	testAdminPassword = "admin-secret"
	testSitePassword  = "site-secret"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeStore is an in-memory db.Store.
type fakeStore struct {
	mu        sync.Mutex
	products  []db.Product
	orders    []db.Order
	nextID    int64
	createErr error
}

var _ db.Store = (*fakeStore)(nil)

func newFakeStore(productNames ...string) *fakeStore {
	s := &fakeStore{}
	for _, name := range productNames {
		s.addProduct(name, nil)
	}
	return s
}

func (s *fakeStore) addProduct(name string, imageURL *string) db.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	s.nextID++
	product := db.Product{
		ID:        s.nextID,
		Name:      name,
		Slug:      util.GenerateRandomSlug(name),
		ImageURL:  imageURL,
		CreatedAt: time.Now(),
	}
	s.products = append(s.products, product)
	return product
}

func (s *fakeStore) Ping(context.Context) error { return nil }

func (s *fakeStore) CountOrders(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.orders)), nil
}

func (s *fakeStore) CountOrdersByType(_ context.Context, orderType db.OrderType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	var n int64
	for _, o := range s.orders {
		if o.Type == orderType {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) CountOrdersCreatedSince(ctx context.Context, createdAt time.Time) (int64, error) {
	orders, err := s.ListOrdersCreatedSince(ctx, createdAt)
	return int64(len(orders)), err
}

func (s *fakeStore) matchingProducts(query string) []db.Product {
	var out []db.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out
}

// likeProducts evaluates name ILIKE '%' || pattern || '%' ESCAPE '\'.
func (s *fakeStore) likeProducts(pattern string) []db.Product {
	var expr strings.Builder
	expr.WriteString("(?is)^.*")
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			expr.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			expr.WriteString(".*")
		case r == '_':
			expr.WriteString(".")
		default:
			expr.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	expr.WriteString(".*$")
	
	re := regexp.MustCompile(expr.String())
	var out []db.Product
	for _, p := range s.products {
		if re.MatchString(p.Name) {
			out = append(out, p)
		}
	}
	return out
}

func (s *fakeStore) CountProducts(_ context.Context, nameQuery string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.likeProducts(nameQuery))), nil
}

func (s *fakeStore) CountSearchProducts(_ context.Context, searchQuery string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.matchingProducts(searchQuery))), nil
}

func (s *fakeStore) CreateOrder(_ context.Context, arg db.CreateOrderParams) (db.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	if s.createErr != nil {
		return db.Order{}, s.createErr
	}
	
	for _, o := range s.orders {
		if o.OrderCode == arg.OrderCode {
			return db.Order{}, &pgconn.PgError{Code: db.UniqueViolationCode, ConstraintName: db.UniqueOrderCodeConstraint}
		}
	}
	
	order := db.Order{
		ID:            arg.ID,
		OrderCode:     arg.OrderCode,
		CustomerName:  arg.CustomerName,
		CustomerEmail: arg.CustomerEmail,
		CustomerPhone: arg.CustomerPhone,
		Type:          arg.Type,
		Items:         arg.Items,
		Notes:         arg.Notes,
		ImageURLs:     arg.ImageURLs,
		Status:        "received",
		CreatedAt:     time.Now(),
	}
	s.orders = append(s.orders, order)
	return order, nil
}

func (s *fakeStore) CreateCatalogOrderTx(ctx context.Context, arg db.CreateCatalogOrderTxParams) (db.Order, error) {
	for _, item := range arg.Items {
		found := false
		for _, p := range s.products {
			if item.ProductID == strconvID(p.ID) {
				found = true
			}
		}
		if !found {
			return db.Order{}, db.ErrUnknownProduct
		}
	}
	
	return s.CreateOrder(ctx, db.CreateOrderParams{
		ID:            uuid.New(),
		OrderCode:     arg.OrderCode,
		CustomerName:  arg.CustomerName,
		CustomerEmail: arg.CustomerEmail,
		CustomerPhone: arg.CustomerPhone,
		Type:          db.OrderTypeCatalog,
		Items:         arg.Items,
		ImageURLs:     []string{},
	})
}

func (s *fakeStore) CreateProduct(_ context.Context, arg db.CreateProductParams) (db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	for _, p := range s.products {
		if p.Slug == arg.Slug {
			return db.Product{}, &pgconn.PgError{Code: db.UniqueViolationCode, ConstraintName: db.UniqueProductSlugConstraint}
		}
	}
	
	s.nextID++
	product := db.Product{ID: s.nextID, Name: arg.Name, Slug: arg.Slug, ImageURL: arg.ImageURL, CreatedAt: time.Now()}
	s.products = append(s.products, product)
	return product, nil
}

func (s *fakeStore) DeleteProduct(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeStore) GetOrderByCode(_ context.Context, orderCode string) (db.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	for _, o := range s.orders {
		if o.OrderCode == orderCode {
			return o, nil
		}
	}
	return db.Order{}, db.ErrRecordNotFound
}

func (s *fakeStore) GetProductByID(_ context.Context, id int64) (db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return db.Product{}, db.ErrRecordNotFound
}

func (s *fakeStore) GetProductBySlug(_ context.Context, slug string) (db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return db.Product{}, db.ErrRecordNotFound
}

func (s *fakeStore) ListOrders(_ context.Context, arg db.ListOrdersParams) ([]db.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	orders := make([]db.Order, len(s.orders))
	copy(orders, s.orders)
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	
	return page(orders, arg.PageLimit, arg.PageOffset), nil
}

func (s *fakeStore) ListOrdersCreatedSince(_ context.Context, createdAt time.Time) ([]db.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	out := []db.Order{}
	for _, o := range s.orders {
		if !o.CreatedAt.Before(createdAt) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeStore) ListProducts(_ context.Context, arg db.ListProductsParams) ([]db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return page(s.likeProducts(arg.NameQuery), arg.PageLimit, arg.PageOffset), nil
}

func (s *fakeStore) ListProductsByIDs(_ context.Context, ids []int64) ([]db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	
	var out []db.Product
	for _, p := range s.products {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (s *fakeStore) SearchProducts(_ context.Context, arg db.SearchProductsParams) ([]db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return page(s.matchingProducts(arg.SearchQuery), arg.PageLimit, arg.PageOffset), nil
}

func page[T any](items []T, limit, offset int64) []T {
	if offset >= int64(len(items)) {
		return []T{}
	}
	end := offset + limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[offset:end]
}

func strconvID(id int64) string {
	return strconv.FormatInt(id, 10)
}

type distributedTask struct {
	taskType string
	payload  any
}

type fakeDistributor struct {
	mu    sync.Mutex
	tasks []distributedTask
	err   error
}

func (d *fakeDistributor) DistributeTaskSendOrderConfirmation(_ context.Context, payload *worker.PayloadSendOrderConfirmation, _ ...asynq.Option) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	
	if d.err != nil {
		return d.err
	}
	d.tasks = append(d.tasks, distributedTask{worker.TaskSendOrderConfirmation, payload})
	return nil
}

func (d *fakeDistributor) DistributeTaskNotifyStaff(_ context.Context, payload *worker.PayloadNotifyStaff, _ ...asynq.Option) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	
	if d.err != nil {
		return d.err
	}
	d.tasks = append(d.tasks, distributedTask{worker.TaskNotifyStaff, payload})
	return nil
}

type fakeInspector struct {
	tasks map[string]*asynq.TaskInfo
}

func (i *fakeInspector) DeleteTask(_ context.Context, queue, taskID string) error {
	if _, ok := i.tasks[queue+"/"+taskID]; !ok {
		return asynq.ErrTaskNotFound
	}
	delete(i.tasks, queue+"/"+taskID)
	return nil
}

func (i *fakeInspector) GetTaskInfo(_ context.Context, queue, taskID string) (*asynq.TaskInfo, error) {
	info, ok := i.tasks[queue+"/"+taskID]
	if !ok {
		return nil, asynq.ErrTaskNotFound
	}
	return info, nil
}

type uploadedFile struct {
	filename string
	folder   string
	size     int
}

type fakeFileStore struct {
	mu      sync.Mutex
	uploads []uploadedFile
	deleted []string
	failOn  string
}

func (f *fakeFileStore) UploadFile(file []byte, filename, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	
	if f.failOn != "" && filename == f.failOn {
		return "", errors.New("upload failed")
	}
	f.uploads = append(f.uploads, uploadedFile{filename, folder, len(file)})
	return "https://res.cloudinary.com/jstore/" + folder + "/" + filename + ".jpg", nil
}

func (f *fakeFileStore) DeleteFile(publicID, folder string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	
	f.deleted = append(f.deleted, folder+"/"+publicID)
	return nil
}

type fakeFetcher struct {
	image imageproxy.Image
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (imageproxy.Image, error) {
	if err := imageproxy.ValidateURL(rawURL); err != nil {
		return imageproxy.Image{}, err
	}
	return f.image, f.err
}

type testEnv struct {
	server      *Server
	store       *fakeStore
	distributor *fakeDistributor
	inspector   *fakeInspector
	files       *fakeFileStore
	fetcher     *fakeFetcher
	carts       *cart.RedisStore
	redis       *miniredis.Miniredis
	events      *event.Hub
}

func newTestEnv(t *testing.T, store *fakeStore, sitePassword string) *testEnv {
	t.Helper()
	
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	
	maker, err := token.NewJWTMaker("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	
	sessions, err := session.NewService(client, maker, map[session.Scope]string{
		session.ScopeSite:  sitePassword,
		session.ScopeAdmin: testAdminPassword,
	})
	require.NoError(t, err)
	
	config := util.Config{
		AllowedOrigins:      []string{"http://localhost:3000"},
		SellerWhatsAppPhone: "+351 912 345 678",
		SiteURL:             "https://jstore.example",
	}
	
	env := &testEnv{
		store:       store,
		distributor: &fakeDistributor{},
		inspector:   &fakeInspector{tasks: map[string]*asynq.TaskInfo{}},
		files:       &fakeFileStore{},
		fetcher:     &fakeFetcher{},
		carts:       cart.NewRedisStore(client, time.Hour),
		redis:       mr,
		events:      event.NewHub(),
	}
	env.server = NewServer(config, store, env.carts, env.files, sessions, env.distributor, env.inspector, env.fetcher, env.events)
	
	return env
}

func (env *testEnv) do(t *testing.T, method, target string, body any, accessToken string) *httptest.ResponseRecorder {
	t.Helper()
	
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	
	request, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		request.Header.Set(authorizationHeaderKey, authorizationTypeBearer+" "+accessToken)
	}
	
	recorder := httptest.NewRecorder()
	env.server.router.ServeHTTP(recorder, request)
	return recorder
}

func (env *testEnv) login(t *testing.T, path, password string) string {
	t.Helper()
	
	recorder := env.do(t, http.MethodPost, path, gin.H{"password": password}, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	
	var resp loginResponse
	decode(t, recorder, &resp)
	require.NotEmpty(t, resp.AccessToken)
	
	return resp.AccessToken
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), v), recorder.Body.String())
}
