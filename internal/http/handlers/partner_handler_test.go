package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/listview"
	"github.com/dealerhub/dealerhub-backend/internal/repo"
	"github.com/dealerhub/dealerhub-backend/internal/services"
)

// ---- stubs for every service consumed by Handlers ----
//
// Each stub dispatches to optional function fields; unset fields return
// zero values so a test only wires the calls it cares about.

type stubAuth struct {
	login  func(ctx context.Context, email, password string) (string, error)
	verify func(token string) (*services.Session, error)
}

func (s stubAuth) Login(ctx context.Context, email, password string) (string, error) {
	if s.login != nil {
		return s.login(ctx, email, password)
	}
	return "", nil
}
func (s stubAuth) Verify(token string) (*services.Session, error) {
	if s.verify != nil {
		return s.verify(token)
	}
	return nil, nil
}

type stubPartners struct {
	list   func(ctx context.Context, role domain.Role, f listview.Filter) ([]domain.Partner, error)
	get    func(ctx context.Context, id string) (*domain.Partner, error)
	create func(ctx context.Context, role domain.Role, in domain.PartnerInput) (string, error)
	update func(ctx context.Context, id string, upd domain.PartnerUpdate) error
	del    func(ctx context.Context, id string) error
}

func (s stubPartners) List(ctx context.Context, role domain.Role, f listview.Filter) ([]domain.Partner, error) {
	if s.list != nil {
		return s.list(ctx, role, f)
	}
	return nil, nil
}
func (s stubPartners) Get(ctx context.Context, id string) (*domain.Partner, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &domain.Partner{}, nil
}
func (s stubPartners) Create(ctx context.Context, role domain.Role, in domain.PartnerInput) (string, error) {
	if s.create != nil {
		return s.create(ctx, role, in)
	}
	return "", nil
}
func (s stubPartners) Update(ctx context.Context, id string, upd domain.PartnerUpdate) error {
	if s.update != nil {
		return s.update(ctx, id, upd)
	}
	return nil
}
func (s stubPartners) Delete(ctx context.Context, id string) error {
	if s.del != nil {
		return s.del(ctx, id)
	}
	return nil
}

type stubOrders struct {
	list func(ctx context.Context, ch domain.Channel, f listview.Filter) ([]domain.Order, error)
}

func (s stubOrders) List(ctx context.Context, ch domain.Channel, f listview.Filter) ([]domain.Order, error) {
	if s.list != nil {
		return s.list(ctx, ch, f)
	}
	return nil, nil
}
func (stubOrders) Create(context.Context, domain.Channel, domain.OrderInput) (string, error) {
	return "", nil
}
func (stubOrders) Update(context.Context, domain.Channel, string, domain.OrderUpdate) error {
	return nil
}
func (stubOrders) Delete(context.Context, domain.Channel, string) error { return nil }
func (stubOrders) Fulfillments(context.Context, domain.Channel, string) ([]domain.Fulfillment, error) {
	return nil, nil
}
func (stubOrders) Fulfill(context.Context, domain.Channel, string, domain.FulfillmentInput) (string, error) {
	return "", nil
}

type stubRewards struct{}

func (stubRewards) ListRewards(context.Context) ([]domain.Reward, error) { return nil, nil }
func (stubRewards) CreateReward(context.Context, domain.RewardInput) (string, error) {
	return "", nil
}
func (stubRewards) UpdateReward(context.Context, string, domain.RewardUpdate) error { return nil }
func (stubRewards) DeleteReward(context.Context, string) error                      { return nil }
func (stubRewards) Redemptions(context.Context, string, listview.Filter) ([]domain.Redemption, error) {
	return nil, nil
}
func (stubRewards) Redeem(context.Context, domain.RedemptionInput) (string, error) { return "", nil }
func (stubRewards) SettleRedemption(context.Context, string, domain.Status) error  { return nil }

type stubRates struct {
	latest func(ctx context.Context) (*domain.Rate, error)
	watch  func(ctx context.Context) (<-chan repo.RateEvent, error)
	post   func(ctx context.Context, newPrice float64) (string, error)
}

func (s stubRates) Latest(ctx context.Context) (*domain.Rate, error) {
	if s.latest != nil {
		return s.latest(ctx)
	}
	return nil, nil
}
func (s stubRates) Watch(ctx context.Context) (<-chan repo.RateEvent, error) {
	if s.watch != nil {
		return s.watch(ctx)
	}
	ch := make(chan repo.RateEvent)
	close(ch)
	return ch, nil
}
func (s stubRates) Post(ctx context.Context, newPrice float64) (string, error) {
	if s.post != nil {
		return s.post(ctx, newPrice)
	}
	return "", nil
}

type stubSummary struct {
	build func(ctx context.Context) (*services.Summary, error)
}

func (s stubSummary) Build(ctx context.Context) (*services.Summary, error) {
	if s.build != nil {
		return s.build(ctx)
	}
	return &services.Summary{}, nil
}

func newTestHandlers(partners PartnerService, orders OrderService, rates RateService) *Handlers {
	return New(stubAuth{}, partners, orders, stubRewards{}, rates, stubSummary{})
}

// ---- tests ----

func TestListPartners_PassesRoleAndFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotRole domain.Role
	var gotFilter listview.Filter
	h := newTestHandlers(stubPartners{
		list: func(_ context.Context, role domain.Role, f listview.Filter) ([]domain.Partner, error) {
			gotRole, gotFilter = role, f
			return []domain.Partner{{ID: "p1", Name: "Asha Traders"}}, nil
		},
	}, stubOrders{}, stubRates{})

	r := gin.New()
	r.GET("/dealers", h.ListPartners(domain.RoleDealer))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dealers?tab=today&status=active&q=asha", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if gotRole != domain.RoleDealer {
		t.Fatalf("role = %q", gotRole)
	}
	if gotFilter.Tab != listview.TabToday || gotFilter.Status != "active" || gotFilter.Query != "asha" {
		t.Fatalf("filter = %+v", gotFilter)
	}
	if gotFilter.Now.IsZero() {
		t.Fatalf("filter must carry a reference time")
	}

	var body []domain.Partner
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body) != 1 || body[0].ID != "p1" {
		t.Fatalf("body = %+v", body)
	}
}

func TestCreatePartner_AcceptsInlineAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotInput domain.PartnerInput
	h := newTestHandlers(stubPartners{
		create: func(_ context.Context, role domain.Role, in domain.PartnerInput) (string, error) {
			if role != domain.RoleInfluencer {
				t.Fatalf("role = %q", role)
			}
			gotInput = in
			return "new-id", nil
		},
	}, stubOrders{}, stubRates{})

	r := gin.New()
	r.POST("/influencers", h.CreatePartner(domain.RoleInfluencer))

	payload := `{
		"name": "Asha Traders",
		"phoneNumber": "9999999999",
		"logo": "data:image/png;base64,aW1n",
		"gstDoc": "https://blobs.local/dealer/9999999999/gst-1"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/influencers", bytes.NewBufferString(payload))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	var resp CreatedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.ID != "new-id" {
		t.Fatalf("response: %v %+v", err, resp)
	}
	if gotInput.Logo.Kind() != domain.AttachmentPending {
		t.Fatalf("logo kind = %d, want pending", gotInput.Logo.Kind())
	}
	if gotInput.GSTDoc.Kind() != domain.AttachmentStored {
		t.Fatalf("gstDoc kind = %d, want stored", gotInput.GSTDoc.Kind())
	}
	if !gotInput.PANCard.IsZero() {
		t.Fatalf("absent attachment should be empty")
	}
}

func TestCreatePartner_RejectsBadAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandlers(stubPartners{
		create: func(context.Context, domain.Role, domain.PartnerInput) (string, error) {
			t.Fatalf("service must not be called")
			return "", nil
		},
	}, stubOrders{}, stubRates{})

	r := gin.New()
	r.POST("/dealers", h.CreatePartner(domain.RoleDealer))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dealers",
		bytes.NewBufferString(`{"name":"x","phoneNumber":"9999999999","logo":"not-a-uri"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPartnerHandlers_ErrorMappings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", services.ErrPartnerNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"bad phone", services.ErrInvalidPhone, http.StatusBadRequest, ErrCodeBadRequest},
		{"bad status", services.ErrInvalidStatus, http.StatusBadRequest, ErrCodeBadRequest},
		{"store failure", context.DeadlineExceeded, http.StatusInternalServerError, ErrCodeWriteFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandlers(stubPartners{
				update: func(context.Context, string, domain.PartnerUpdate) error { return tc.err },
			}, stubOrders{}, stubRates{})

			r := gin.New()
			r.PATCH("/dealers/:id", h.UpdatePartner)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/dealers/p1", bytes.NewBufferString(`{"name":"x"}`))
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body=%s)", w.Code, tc.wantStatus, w.Body.String())
			}
			var er ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
				t.Fatalf("json: %v", err)
			}
			if er.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", er.Code, tc.wantCode)
			}
		})
	}
}

func TestDeletePartner_NoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var deleted string
	h := newTestHandlers(stubPartners{
		del: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}, stubOrders{}, stubRates{})

	r := gin.New()
	r.DELETE("/dealers/:id", h.DeletePartner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/dealers/p9", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent || deleted != "p9" {
		t.Fatalf("status=%d deleted=%q", w.Code, deleted)
	}
}
