package handler_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/buwaneka1/shop-mapper/internal/models"
)

func shopForm(f *fixture) url.Values {
	return url.Values{
		"name":          {"New Kade"},
		"ownerName":     {"Sunil"},
		"contactNumber": {"0771234567"},
		"paymentMethod": {models.PaymentCredit},
		"creditPeriod":  {"30"},
		"paymentStatus": {models.StatusDelayed},
		"avgBillValue":  {"12500.50"},
		"routeId":       {idStr(f.route.ID)},
		"latitude":      {"5.9731"},
		"longitude":     {"80.4297"},
	}
}

func TestCreateShop_Roles(t *testing.T) {
	r, db := newTestApp(t)
	f := seedFixture(t, db)

	// viewers may not create shops
	viewer := mustLogin(t, r, "viewer", f.territory.ID)
	if w := do(r, http.MethodPost, "/api/shops", shopForm(f), viewer); w.Code != http.StatusForbidden {
		t.Errorf("viewer create shop = %d, want 403", w.Code)
	}
	var count int64
	db.Model(&models.Shop{}).Count(&count)
	if count != 1 {
		t.Errorf("denied create changed shop count to %d", count)
	}

	// reps may
	rep := mustLogin(t, r, "repA", f.territory.ID)
	if w := do(r, http.MethodPost, "/api/shops", shopForm(f), rep); w.Code != http.StatusOK {
		t.Fatalf("rep create shop = %d, want 200", w.Code)
	}

	var created models.Shop
	if err := db.Where("name = ?", "New Kade").First(&created).Error; err != nil {
		t.Fatalf("created shop not found: %v", err)
	}
	if created.PaymentMethod != models.PaymentCredit {
		t.Errorf("payment method = %q, want CREDIT", created.PaymentMethod)
	}
	if created.CreditPeriod == nil || *created.CreditPeriod != 30 {
		t.Errorf("credit period = %v, want 30", created.CreditPeriod)
	}
	if created.PaymentStatus != models.StatusDelayed {
		t.Errorf("payment status = %q, want DELAYED", created.PaymentStatus)
	}
}

func TestCreateShop_Validation(t *testing.T) {
	r, db := newTestApp(t)
	f := seedFixture(t, db)
	rep := mustLogin(t, r, "repA", f.territory.ID)

	broken := func(mutate func(url.Values)) url.Values {
		form := shopForm(f)
		mutate(form)
		return form
	}

	cases := []struct {
		name string
		form url.Values
	}{
		{"missing name", broken(func(v url.Values) { v.Del("name") })},
		{"bad payment method", broken(func(v url.Values) { v.Set("paymentMethod", "BARTER") })},
		{"bad payment status", broken(func(v url.Values) { v.Set("paymentStatus", "LATE") })},
		{"bad latitude", broken(func(v url.Values) { v.Set("latitude", "north") })},
		{"missing longitude", broken(func(v url.Values) { v.Del("longitude") })},
		{"bad route", broken(func(v url.Values) { v.Set("routeId", "nine") })},
		{"bad credit period", broken(func(v url.Values) { v.Set("creditPeriod", "soon") })},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := do(r, http.MethodPost, "/api/shops", tc.form, rep); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestUpdateShop(t *testing.T) {
	r, db := newTestApp(t)
	f := seedFixture(t, db)
	rep := mustLogin(t, r, "repA", f.territory.ID)

	form := shopForm(f)
	form.Set("name", "Kade Renamed")
	form.Set("paymentMethod", models.PaymentCash)
	form.Del("creditPeriod")

	if w := do(r, http.MethodPut, "/api/shops/"+idStr(f.shop.ID), form, rep); w.Code != http.StatusOK {
		t.Fatalf("rep update shop = %d, want 200", w.Code)
	}

	var updated models.Shop
	if err := db.First(&updated, f.shop.ID).Error; err != nil {
		t.Fatalf("reload shop: %v", err)
	}
	if updated.Name != "Kade Renamed" {
		t.Errorf("name = %q, want Kade Renamed", updated.Name)
	}
	if updated.PaymentMethod != models.PaymentCash {
		t.Errorf("payment method = %q, want CASH", updated.PaymentMethod)
	}
	if updated.CreditPeriod != nil {
		t.Errorf("credit period = %d, want cleared", *updated.CreditPeriod)
	}
}

func TestDeleteShop_AdminOnly(t *testing.T) {
	r, db := newTestApp(t)
	f := seedFixture(t, db)

	rep := mustLogin(t, r, "repA", f.territory.ID)
	if w := do(r, http.MethodDelete, "/api/shops/"+idStr(f.shop.ID), nil, rep); w.Code != http.StatusForbidden {
		t.Errorf("rep delete shop = %d, want 403", w.Code)
	}
	var still models.Shop
	if err := db.First(&still, f.shop.ID).Error; err != nil {
		t.Fatal("shop vanished after denied delete")
	}

	admin := mustLogin(t, r, "admin", f.territory.ID)
	if w := do(r, http.MethodDelete, "/api/shops/"+idStr(f.shop.ID), nil, admin); w.Code != http.StatusOK {
		t.Fatalf("admin delete shop = %d, want 200", w.Code)
	}
	if err := db.First(&still, f.shop.ID).Error; err == nil {
		t.Error("shop still present after delete")
	}
}

// The dashboard only ever returns shops reachable through the session's
// scoped lorries: the admin sees the fixture shop, a rep bound to the
// other lorry in the same territory does not.
func TestDashboard_Scoping(t *testing.T) {
	r, db := newTestApp(t)
	f := seedFixture(t, db)

	admin := mustLogin(t, r, "admin", f.territory.ID)
	w := do(r, http.MethodGet, "/", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("admin dashboard = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"Kade"`) {
		t.Error("admin dashboard does not include the territory's shop")
	}

	repB := mustLogin(t, r, "repB", f.territory.ID)
	w = do(r, http.MethodGet, "/", nil, repB)
	if w.Code != http.StatusOK {
		t.Fatalf("rep dashboard = %d, want 200", w.Code)
	}
	if strings.Contains(w.Body.String(), `"Kade"`) {
		t.Error("rep bound to another lorry can see the shop")
	}
}

func TestExportShops(t *testing.T) {
	r, db := newTestApp(t)
	f := seedFixture(t, db)

	if w := do(r, http.MethodGet, "/api/shops/export", nil, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous export = %d, want 401", w.Code)
	}

	admin := mustLogin(t, r, "admin", f.territory.ID)
	w := do(r, http.MethodGet, "/api/shops/export", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("export = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q, want spreadsheet", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("export body is empty")
	}
}
