package router

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Renal37/smm-storefront/internal/api"
	"github.com/Renal37/smm-storefront/internal/catalog"
	"github.com/Renal37/smm-storefront/internal/middlewares"
	"github.com/Renal37/smm-storefront/internal/models"
	mock_models "github.com/Renal37/smm-storefront/internal/models/mocks"
	"github.com/Renal37/smm-storefront/internal/services"
	"github.com/Renal37/smm-storefront/internal/utils"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

type testMocks struct {
	catalog     *mock_models.MockCatalogService
	checkout    *mock_models.MockCheckoutService
	billing     *mock_models.MockBillingService
	dashboard   *mock_models.MockDashboardService
	session     *mock_models.MockSessionService
	idempotency *mock_models.MockIdempotencyStore
}

var testSession = models.Session{Token: "token", Subject: "alice@example.com", Name: "Alice"}

func newTestServer(t *testing.T) (*httptest.Server, testMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mocks := testMocks{
		catalog:     mock_models.NewMockCatalogService(ctrl),
		checkout:    mock_models.NewMockCheckoutService(ctrl),
		billing:     mock_models.NewMockBillingService(ctrl),
		dashboard:   mock_models.NewMockDashboardService(ctrl),
		session:     mock_models.NewMockSessionService(ctrl),
		idempotency: mock_models.NewMockIdempotencyStore(ctrl),
	}

	mocks.session.EXPECT().Resolve("token").Return(testSession, nil).AnyTimes()
	mocks.session.EXPECT().Resolve("expired").Return(models.Session{}, services.ErrTokenIsExpired).AnyTimes()

	testServer := httptest.NewServer(New(Config{}, middlewares.Services{
		Catalog:     mocks.catalog,
		Checkout:    mocks.checkout,
		Billing:     mocks.billing,
		Dashboard:   mocks.dashboard,
		Session:     mocks.session,
		Idempotency: mocks.idempotency,
	}).get())
	t.Cleanup(testServer.Close)

	return testServer, mocks
}

type routeTestCase struct {
	testName        string
	methodName      string
	targetURL       string
	headers         map[string]string
	body            func(t *testing.T) (io.Reader, string)
	test            func(m testMocks)
	expectedCode    int
	expectedMessage string
}

func jsonBody(data string) func(t *testing.T) (io.Reader, string) {
	return func(*testing.T) (io.Reader, string) {
		return bytes.NewBufferString(data), "application/json"
	}
}

func runRouteTests(t *testing.T, testCases []routeTestCase) {
	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			testServer, mocks := newTestServer(t)

			headers := map[string]string{"Authorization": "Bearer token"}
			for k, v := range tc.headers {
				headers[k] = v
			}

			var body io.Reader
			if tc.body != nil {
				var contentType string
				body, contentType = tc.body(t)
				headers["Content-Type"] = contentType
			}

			if tc.test != nil {
				tc.test(mocks)
			}

			res, mes := utils.TestRequest(t, testServer, tc.methodName, tc.targetURL, headers, body)
			res.Body.Close()

			assert.Equal(t, tc.expectedCode, res.StatusCode)
			if tc.expectedMessage == "" {
				assert.Empty(t, mes)
				return
			}
			assert.JSONEq(t, tc.expectedMessage, mes)
		})
	}
}

var followers = models.Service{
	ID:       1,
	Title:    "Instagram Followers",
	Price:    models.Price{Amount: 5, Unit: "1000"},
	Min:      100,
	Max:      10000,
	Category: "Instagram",
	Features: []string{},
}

func TestServiceRoutes(t *testing.T) {
	runRouteTests(t, []routeTestCase{
		{
			testName:   "Should list services without authorization",
			methodName: http.MethodGet,
			targetURL:  "/api/services?category=Instagram&q=follow",
			headers:    map[string]string{"Authorization": ""},
			test: func(m testMocks) {
				m.catalog.EXPECT().List(gomock.Any(), models.CatalogFilter{Category: "Instagram", Query: "follow"}).Return([]models.Service{followers}, nil)
			},
			expectedCode: http.StatusOK,
			expectedMessage: `[{"id":1,"title":"Instagram Followers","description":"","price":{"amount":5,"unit":"1000"},
				"min":100,"max":10000,"category":"Instagram","platform":"","features":[],"icon":"","color":"","bg":"",
				"rate":0.005,"display_rate":"€ 5,00 / 1000"}]`,
		},
		{
			testName:   "Should report maintenance",
			methodName: http.MethodGet,
			targetURL:  "/api/services",
			test: func(m testMocks) {
				m.catalog.EXPECT().List(gomock.Any(), models.CatalogFilter{}).Return(nil, &api.StatusError{Code: http.StatusServiceUnavailable, Detail: "maintenance"})
			},
			expectedCode:    http.StatusServiceUnavailable,
			expectedMessage: `{"detail":"backend responded with status 503: maintenance"}`,
		},
		{
			testName:        "Should reject non numeric service id",
			methodName:      http.MethodGet,
			targetURL:       "/api/services/abc",
			expectedCode:    http.StatusBadRequest,
			expectedMessage: `{"detail":"service id must be a number"}`,
		},
		{
			testName:   "Should return 404 for unknown service",
			methodName: http.MethodGet,
			targetURL:  "/api/services/7",
			test: func(m testMocks) {
				m.catalog.EXPECT().Get(gomock.Any(), 7).Return(models.Service{}, catalog.ErrServiceNotFound)
			},
			expectedCode:    http.StatusNotFound,
			expectedMessage: `{"detail":"service not found"}`,
		},
	})
}

func TestAuthorization(t *testing.T) {
	runRouteTests(t, []routeTestCase{
		{
			testName:        "Should require authorization header",
			methodName:      http.MethodGet,
			targetURL:       "/api/dashboard",
			headers:         map[string]string{"Authorization": ""},
			expectedCode:    http.StatusUnauthorized,
			expectedMessage: `{"detail":"Authorization header is required"}`,
		},
		{
			testName:        "Should reject non bearer scheme",
			methodName:      http.MethodGet,
			targetURL:       "/api/dashboard",
			headers:         map[string]string{"Authorization": "Basic dXNlcg=="},
			expectedCode:    http.StatusUnauthorized,
			expectedMessage: `{"detail":"bearer token is empty"}`,
		},
		{
			testName:        "Should reject expired token",
			methodName:      http.MethodGet,
			targetURL:       "/api/dashboard",
			headers:         map[string]string{"Authorization": "Bearer expired"},
			expectedCode:    http.StatusUnauthorized,
			expectedMessage: `{"detail":"token is expired"}`,
		},
		{
			testName:   "Should return dashboard",
			methodName: http.MethodGet,
			targetURL:  "/api/dashboard",
			test: func(m testMocks) {
				m.dashboard.EXPECT().Get(gomock.Any(), testSession).Return(models.Dashboard{OrderCount: 3}, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: `{"order_count":3,"orders":null,"transactions":null,"notifications":null,"revenue":null}`,
		},
	})
}

func TestCheckoutRoutes(t *testing.T) {
	view := models.CheckoutView{ID: "c-1", ServiceID: 1, State: models.StateIdle, Quantity: 300}
	viewJSON := `{"id":"c-1","service_id":1,"service_title":"","state":"idle","quantity":300,"quantity_editable":false,
		"min":0,"max":0,"link":"","customer_name":"","resale_price":"","payment_method":"","currency":"","rate":0,
		"display_rate":"","total_cost":0,"profit":0,"can_submit":false}`

	runRouteTests(t, []routeTestCase{
		{
			testName:        "Should open checkout",
			methodName:      http.MethodPost,
			targetURL:       "/api/checkouts",
			body:            jsonBody(`{"service_id":1,"currency":"usd"}`),
			test:            func(m testMocks) { m.checkout.EXPECT().Open(gomock.Any(), testSession, 1, "usd").Return(view, nil) },
			expectedCode:    http.StatusCreated,
			expectedMessage: viewJSON,
		},
		{
			testName:        "Should require service id",
			methodName:      http.MethodPost,
			targetURL:       "/api/checkouts",
			body:            jsonBody(`{"currency":"usd"}`),
			expectedCode:    http.StatusBadRequest,
			expectedMessage: `{"detail":"service_id is required"}`,
		},
		{
			testName:   "Should reject non JSON body",
			methodName: http.MethodPost,
			targetURL:  "/api/checkouts",
			body: func(*testing.T) (io.Reader, string) {
				return bytes.NewBufferString("service_id=1"), "text/plain"
			},
			expectedCode:    http.StatusUnsupportedMediaType,
			expectedMessage: `{"detail":"Content-Type is not application/json"}`,
		},
		{
			testName:   "Should update checkout with numeric quantity",
			methodName: http.MethodPatch,
			targetURL:  "/api/checkouts/c-1",
			body:       jsonBody(`{"quantity":300}`),
			test: func(m testMocks) {
				m.checkout.EXPECT().Update(testSession, "c-1", models.DraftPatch{Quantity: models.FlexInt(300)}).Return(view, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: viewJSON,
		},
		{
			testName:   "Should reject changes of fixed quantity",
			methodName: http.MethodPatch,
			targetURL:  "/api/checkouts/c-1",
			body:       jsonBody(`{"quantity":"5"}`),
			test: func(m testMocks) {
				m.checkout.EXPECT().Update(testSession, "c-1", gomock.Any()).Return(models.CheckoutView{}, services.ErrQuantityFixed)
			},
			expectedCode:    http.StatusUnprocessableEntity,
			expectedMessage: `{"detail":"quantity of this service is fixed"}`,
		},
		{
			testName:   "Should return 404 for foreign checkout",
			methodName: http.MethodGet,
			targetURL:  "/api/checkouts/c-2",
			test: func(m testMocks) {
				m.checkout.EXPECT().View(testSession, "c-2").Return(models.CheckoutView{}, services.ErrCheckoutNotFound)
			},
			expectedCode:    http.StatusNotFound,
			expectedMessage: `{"detail":"checkout not found"}`,
		},
		{
			testName:   "Should attach receipt",
			methodName: http.MethodPut,
			targetURL:  "/api/checkouts/c-1/receipt",
			body: func(t *testing.T) (io.Reader, string) {
				return utils.MultipartBody(t, nil, &utils.TestFile{Field: "file", Name: "proof.png", ContentType: "image/png", Data: []byte("png")})
			},
			test: func(m testMocks) {
				m.checkout.EXPECT().AttachReceipt(testSession, "c-1", models.Receipt{FileName: "proof.png", ContentType: "image/png", Data: []byte("png")}).Return(view, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: viewJSON,
		},
		{
			testName:   "Should require receipt file",
			methodName: http.MethodPut,
			targetURL:  "/api/checkouts/c-1/receipt",
			body: func(t *testing.T) (io.Reader, string) {
				return utils.MultipartBody(t, map[string]string{"note": "x"}, nil)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: `{"detail":"file is required"}`,
		},
		{
			testName:   "Should refuse disabled submission",
			methodName: http.MethodPost,
			targetURL:  "/api/checkouts/c-1/submit",
			test: func(m testMocks) {
				m.checkout.EXPECT().Submit(gomock.Any(), testSession, "c-1").Return(models.OrderResult{}, errors.Join(services.ErrSubmitDisabled, services.ErrLinkRequired))
			},
			expectedCode:    http.StatusUnprocessableEntity,
			expectedMessage: `{"detail":"order cannot be submitted yet\nlink is required"}`,
		},
		{
			testName:   "Should report backend failure",
			methodName: http.MethodPost,
			targetURL:  "/api/checkouts/c-1/submit",
			test: func(m testMocks) {
				m.checkout.EXPECT().Submit(gomock.Any(), testSession, "c-1").Return(models.OrderResult{}, errors.New("failed to create order: boom"))
			},
			expectedCode:    http.StatusBadGateway,
			expectedMessage: `{"detail":"failed to create order: boom"}`,
		},
		{
			testName:   "Should reject submission in progress",
			methodName: http.MethodPost,
			targetURL:  "/api/checkouts/c-1/submit",
			test: func(m testMocks) {
				m.checkout.EXPECT().Submit(gomock.Any(), testSession, "c-1").Return(models.OrderResult{}, services.ErrSubmitInProgress)
			},
			expectedCode:    http.StatusConflict,
			expectedMessage: `{"detail":"order submission is in progress"}`,
		},
		{
			testName:   "Should submit checkout",
			methodName: http.MethodPost,
			targetURL:  "/api/checkouts/c-1/submit",
			headers:    map[string]string{"Idempotency-Key": "k-1"},
			test: func(m testMocks) {
				m.idempotency.EXPECT().Seen(gomock.Any(), "idem:checkout:alice@example.com:k-1").Return(false, nil)
				m.checkout.EXPECT().Submit(gomock.Any(), testSession, "c-1").Return(models.OrderResult{Cost: 1.5, Profit: 0.5}, nil)
			},
			expectedCode: http.StatusOK,
			expectedMessage: `{"cost":1.5,"profit":0.5,"order":{"id":0,"name":"","amount":"","cost":0,"profit":0,"link":"",
				"customer_name":"","payment_method":""}}`,
		},
		{
			testName:   "Should release idempotency key when submit fails",
			methodName: http.MethodPost,
			targetURL:  "/api/checkouts/c-1/submit",
			headers:    map[string]string{"Idempotency-Key": "k-1"},
			test: func(m testMocks) {
				m.idempotency.EXPECT().Seen(gomock.Any(), "idem:checkout:alice@example.com:k-1").Return(false, nil)
				m.checkout.EXPECT().Submit(gomock.Any(), testSession, "c-1").Return(models.OrderResult{}, errors.New("backend responded with status 500: oops"))
				m.idempotency.EXPECT().Release(gomock.Any(), "idem:checkout:alice@example.com:k-1").Return(nil)
			},
			expectedCode:    http.StatusBadGateway,
			expectedMessage: `{"detail":"backend responded with status 500: oops"}`,
		},
		{
			testName:   "Should reject repeated idempotency key",
			methodName: http.MethodPost,
			targetURL:  "/api/checkouts/c-1/submit",
			headers:    map[string]string{"Idempotency-Key": "k-1"},
			test: func(m testMocks) {
				m.idempotency.EXPECT().Seen(gomock.Any(), "idem:checkout:alice@example.com:k-1").Return(true, nil)
			},
			expectedCode:    http.StatusConflict,
			expectedMessage: `{"detail":"request with this Idempotency-Key was already processed"}`,
		},
		{
			testName:   "Should close checkout",
			methodName: http.MethodDelete,
			targetURL:  "/api/checkouts/c-1",
			test: func(m testMocks) {
				m.checkout.EXPECT().Close(testSession, "c-1").Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
	})
}

func TestBillingRoutes(t *testing.T) {
	receipt := &utils.TestFile{Field: "file", Name: "recu.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}

	runRouteTests(t, []routeTestCase{
		{
			testName:   "Should create deposit with receipt",
			methodName: http.MethodPost,
			targetURL:  "/api/billing/deposits",
			body: func(t *testing.T) (io.Reader, string) {
				return utils.MultipartBody(t, map[string]string{"amount": "25", "payment_method": "bank_ma"}, receipt)
			},
			test: func(m testMocks) {
				m.billing.EXPECT().Deposit(gomock.Any(), testSession, models.DepositDraft{
					Amount:        "25",
					PaymentMethod: models.PaymentBankMA,
					Receipt:       &models.Receipt{FileName: "recu.jpg", ContentType: "image/jpeg", Data: []byte("jpg")},
				}).Return(models.Deposit{Amount: 25, PaymentMethod: models.PaymentBankMA, Currency: "EUR", ReceiptURL: "https://cdn/r.jpg"}, nil)
			},
			expectedCode:    http.StatusCreated,
			expectedMessage: `{"amount":25,"payment_method":"bank_ma","currency":"EUR","receipt_url":"https://cdn/r.jpg"}`,
		},
		{
			testName:   "Should reject manual deposit without receipt",
			methodName: http.MethodPost,
			targetURL:  "/api/billing/deposits",
			body: func(t *testing.T) (io.Reader, string) {
				return utils.MultipartBody(t, map[string]string{"amount": "25", "payment_method": "orange"}, nil)
			},
			test: func(m testMocks) {
				m.billing.EXPECT().Deposit(gomock.Any(), testSession, models.DepositDraft{Amount: "25", PaymentMethod: models.PaymentOrange}).Return(models.Deposit{}, services.ErrReceiptRequired)
			},
			expectedCode:    http.StatusUnprocessableEntity,
			expectedMessage: `{"detail":"receipt is required for this payment method"}`,
		},
		{
			testName:        "Should reject JSON deposit",
			methodName:      http.MethodPost,
			targetURL:       "/api/billing/deposits",
			body:            jsonBody(`{"amount":25}`),
			expectedCode:    http.StatusUnsupportedMediaType,
			expectedMessage: `{"detail":"Content-Type is not multipart/form-data"}`,
		},
	})
}
