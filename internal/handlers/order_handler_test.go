package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"jualsampah/internal/models"
	"jualsampah/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderResponse struct {
	Message string       `json:"message"`
	Data    models.Order `json:"data"`
}

type ordersResponse struct {
	Message string         `json:"message"`
	Data    []models.Order `json:"data"`
}

func orderBody(username, category string, kg float64) map[string]interface{} {
	return map[string]interface{}{
		"username":        username,
		"jenis_sampah":    category,
		"berat_sampah":    kg,
		"lokasi_pengepul": "Bank Sampah Melati",
		"lokasi_user":     "Jl. Kenanga 5",
	}
}

// failingRepository fails every call it implements; the rest are never reached.
type failingRepository struct {
	repositories.OrderRepository
}

func (failingRepository) GetAll(repositories.SortField) ([]models.Order, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) GetByUsername(string) ([]models.Order, error) {
	return nil, errors.New("connection refused")
}

func TestOrderHandler_SellCompleteAndCollectPoints(t *testing.T) {
	app := newOrderApp(t, repositories.NewMockOrderRepository())

	status, raw := doRequest(t, app, http.MethodPost, "/orders", orderBody("Zayn", "Kaleng", 2))
	require.Equal(t, http.StatusCreated, status, string(raw))

	var created orderResponse
	decode(t, raw, &created)
	assert.Equal(t, "Order kamu berhasil!", created.Message)
	assert.Equal(t, 13000, created.Data.PricePerKg)
	assert.Equal(t, 5, created.Data.Points)
	assert.Equal(t, models.StatusPending, created.Data.Status)
	require.NotZero(t, created.Data.ID)

	completePath := fmt.Sprintf("/orders/%d/selesai", created.Data.ID)
	status, raw = doRequest(t, app, http.MethodPost, completePath, nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	var completed orderResponse
	decode(t, raw, &completed)
	assert.Equal(t, "Transaksi berhasil! Order kamu telah selesai", completed.Message)
	assert.Equal(t, models.StatusCompleted, completed.Data.Status)

	status, raw = doRequest(t, app, http.MethodPost, completePath, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"Order telah selesai"}`, string(raw))

	status, raw = doRequest(t, app, http.MethodGet, "/users/Zayn/totalpoints", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"totalPoints":10}`, string(raw))

	status, raw = doRequest(t, app, http.MethodGet, "/users/Zayn/price", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total_income_jual_sampah":26000}`, string(raw))
}

func TestOrderHandler_StatusActions(t *testing.T) {
	app := newOrderApp(t, repositories.NewMockOrderRepository())

	status, raw := doRequest(t, app, http.MethodPost, "/orders", orderBody("Budi", "Botol", 1))
	require.Equal(t, http.StatusCreated, status)
	var created orderResponse
	decode(t, raw, &created)

	tests := []struct {
		action string
		want   models.OrderStatus
	}{
		{"pengecekan", models.StatusChecking},
		{"diproses", models.StatusProcessing},
		{"dibatalkan", models.StatusCancelled},
		{"pengecekan", models.StatusChecking},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			status, raw := doRequest(t, app, http.MethodPost, fmt.Sprintf("/orders/%d/%s", created.Data.ID, tt.action), nil)
			require.Equal(t, http.StatusOK, status, string(raw))

			status, raw = doRequest(t, app, http.MethodGet, fmt.Sprintf("/orders/%d/lacak", created.Data.ID), nil)
			require.Equal(t, http.StatusOK, status)
			assert.JSONEq(t, fmt.Sprintf(`{"status":%q}`, tt.want), string(raw))
		})
	}

	status, raw = doRequest(t, app, http.MethodPost, fmt.Sprintf("/orders/%d/pengecekan", created.Data.ID), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"Order sedang dalam pengecekan"}`, string(raw))
}

func TestOrderHandler_CreateValidation(t *testing.T) {
	app := newOrderApp(t, repositories.NewMockOrderRepository())

	status, raw := doRequest(t, app, http.MethodPost, "/orders", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, status)

	var fieldErrors []map[string]string
	decode(t, raw, &fieldErrors)
	require.Len(t, fieldErrors, 5)
	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		assert.Equal(t, "required", fe["type"])
		fields = append(fields, fe["field"])
	}
	assert.ElementsMatch(t, []string{"username", "jenis_sampah", "berat_sampah", "lokasi_pengepul", "lokasi_user"}, fields)

	body := orderBody("Zayn", "Kaleng", 0)
	status, raw = doRequest(t, app, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusBadRequest, status)
	decode(t, raw, &fieldErrors)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "numberPositive", fieldErrors[0]["type"])
	assert.Equal(t, "berat_sampah", fieldErrors[0]["field"])

	status, raw = doRequest(t, app, http.MethodPost, "/orders", `{"username": "Zayn",`)
	require.Equal(t, http.StatusBadRequest, status)
	var parseErr map[string]string
	decode(t, raw, &parseErr)
	assert.Equal(t, "Invalid request body", parseErr["message"])
	assert.NotEmpty(t, parseErr["error"])

	// Nothing was stored
	status, raw = doRequest(t, app, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, status)
	var list ordersResponse
	decode(t, raw, &list)
	assert.Empty(t, list.Data)
}

func TestOrderHandler_UnknownCategoryPricesAtZero(t *testing.T) {
	app := newOrderApp(t, repositories.NewMockOrderRepository())

	status, raw := doRequest(t, app, http.MethodPost, "/orders", orderBody("Zayn", "Kaca", 3))
	require.Equal(t, http.StatusCreated, status)

	var created orderResponse
	decode(t, raw, &created)
	assert.Zero(t, created.Data.PricePerKg)
	assert.Zero(t, created.Data.Points)
}

func TestOrderHandler_ListGetUpdateDelete(t *testing.T) {
	app := newOrderApp(t, repositories.NewMockOrderRepository())

	status, raw := doRequest(t, app, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Berhasil menampilkan semua order","data":[]}`, string(raw))

	for _, name := range []string{"Zayn", "Budi"} {
		status, _ = doRequest(t, app, http.MethodPost, "/orders", orderBody(name, "Paper", 1))
		require.Equal(t, http.StatusCreated, status)
	}

	status, raw = doRequest(t, app, http.MethodGet, "/orders?sort=created_at", nil)
	require.Equal(t, http.StatusOK, status)
	var list ordersResponse
	decode(t, raw, &list)
	assert.Len(t, list.Data, 2)

	status, raw = doRequest(t, app, http.MethodGet, "/orders/1", nil)
	require.Equal(t, http.StatusOK, status)
	var fetched orderResponse
	decode(t, raw, &fetched)
	assert.Equal(t, "Zayn", fetched.Data.Username)

	status, _ = doRequest(t, app, http.MethodPost, "/orders/1/diproses", nil)
	require.Equal(t, http.StatusOK, status)

	update := orderBody("Zayn", "Organik", 4)
	update["catatan"] = "Sisa sayur"
	status, raw = doRequest(t, app, http.MethodPut, "/orders/1", update)
	require.Equal(t, http.StatusOK, status, string(raw))
	var updated orderResponse
	decode(t, raw, &updated)
	assert.Equal(t, "Order kamu berhasil diupdate!", updated.Message)
	assert.Equal(t, "Organik", updated.Data.WasteCategory)
	assert.Equal(t, 3000, updated.Data.PricePerKg)
	assert.Equal(t, 3, updated.Data.Points)
	assert.Equal(t, "Sisa sayur", updated.Data.Note)
	assert.Equal(t, models.StatusProcessing, updated.Data.Status, "update must not touch the status")

	status, raw = doRequest(t, app, http.MethodPut, "/orders/1", map[string]interface{}{"username": "Zayn"})
	assert.Equal(t, http.StatusBadRequest, status, string(raw))

	status, raw = doRequest(t, app, http.MethodDelete, "/orders/1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Order kamu berhasil dihapus"}`, string(raw))

	status, _ = doRequest(t, app, http.MethodGet, "/orders/1", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, raw = doRequest(t, app, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, raw, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Budi", list.Data[0].Username)
}

func TestOrderHandler_InvalidSort(t *testing.T) {
	app := newOrderApp(t, repositories.NewMockOrderRepository())

	status, raw := doRequest(t, app, http.MethodGet, "/orders?sort=price", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(raw), "Parameter sort tidak valid")
}

func TestOrderHandler_GetByEmail(t *testing.T) {
	app := newOrderApp(t, repositories.NewMockOrderRepository())

	body := orderBody("Zayn", "Besi", 2)
	body["email"] = "zayn@example.com"
	status, _ := doRequest(t, app, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusCreated, status)

	status, raw := doRequest(t, app, http.MethodGet, "/orders/email/zayn%40example.com", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	var list ordersResponse
	decode(t, raw, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Besi", list.Data[0].WasteCategory)

	status, raw = doRequest(t, app, http.MethodGet, "/orders/email/nobody@example.com", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Order tidak ditemukan"}`, string(raw))

	body["email"] = "not-an-email"
	status, _ = doRequest(t, app, http.MethodPost, "/orders", body)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOrderHandler_UnknownOrder(t *testing.T) {
	app := newOrderApp(t, repositories.NewMockOrderRepository())

	requests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/orders/42", nil},
		{http.MethodGet, "/orders/abc", nil},
		{http.MethodGet, "/orders/0", nil},
		{http.MethodGet, "/orders/42/lacak", nil},
		{http.MethodPost, "/orders/42/selesai", nil},
		{http.MethodPost, "/orders/abc/diproses", nil},
		{http.MethodPut, "/orders/42", orderBody("Zayn", "Kaleng", 1)},
		{http.MethodDelete, "/orders/42", nil},
	}

	for _, r := range requests {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			status, raw := doRequest(t, app, r.method, r.path, r.body)
			assert.Equal(t, http.StatusNotFound, status)
			assert.JSONEq(t, `{"error":"Order tidak ditemukan"}`, string(raw))
		})
	}
}

func TestOrderHandler_UserWithoutOrders(t *testing.T) {
	app := newOrderApp(t, repositories.NewMockOrderRepository())

	status, raw := doRequest(t, app, http.MethodGet, "/users/ghost/totalpoints", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"totalPoints":0}`, string(raw))

	status, raw = doRequest(t, app, http.MethodGet, "/users/ghost/price", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total_income_jual_sampah":0}`, string(raw))
}

func TestOrderHandler_StoreFailureIsHidden(t *testing.T) {
	app := newOrderApp(t, failingRepository{})

	for _, path := range []string{"/orders", "/users/Zayn/price", "/users/Zayn/totalpoints"} {
		status, raw := doRequest(t, app, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, status, path)
		assert.JSONEq(t, `{"error":"Internal server error"}`, string(raw))
	}
}

func TestOrderHandler_TotalsDecodeUsername(t *testing.T) {
	app := newOrderApp(t, repositories.NewMockOrderRepository())

	status, raw := doRequest(t, app, http.MethodPost, "/orders", orderBody("Siti Nur", "Kaleng", 2))
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = doRequest(t, app, http.MethodGet, "/users/Siti%20Nur/totalpoints", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"totalPoints":10}`, string(raw))

	status, raw = doRequest(t, app, http.MethodGet, "/users/Siti%20Nur/price", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total_income_jual_sampah":26000}`, string(raw))
}

func TestOrderHandler_WrongFieldTypeIsAFieldError(t *testing.T) {
	app := newOrderApp(t, repositories.NewMockOrderRepository())

	body := orderBody("Zayn", "Kaleng", 2)
	body["berat_sampah"] = "2"
	status, raw := doRequest(t, app, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusBadRequest, status)

	var fieldErrors []map[string]string
	decode(t, raw, &fieldErrors)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "number", fieldErrors[0]["type"])
	assert.Equal(t, "berat_sampah", fieldErrors[0]["field"])
	assert.NotContains(t, string(raw), "Go struct")

	status, raw = doRequest(t, app, http.MethodPost, "/orders", orderBody("Zayn", "Kaleng", 2))
	require.Equal(t, http.StatusCreated, status, string(raw))

	body["berat_sampah"] = 3
	body["username"] = 42
	status, raw = doRequest(t, app, http.MethodPut, "/orders/1", body)
	require.Equal(t, http.StatusBadRequest, status)
	decode(t, raw, &fieldErrors)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "string", fieldErrors[0]["type"])
	assert.Equal(t, "username", fieldErrors[0]["field"])
}
