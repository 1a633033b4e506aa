package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

func TestProfileGetAndUpdate(t *testing.T) {
	env := setupEnv(t)
	u := env.createUser(t, "alice@example.com", "alice")
	h := NewProfileHandler(env.users, discardLogger())

	rec := httptest.NewRecorder()
	h.Get(rec, authed("GET", "/api/profile", "", u))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	got := decodeBody[model.User](t, rec)
	if got.CalorieGoal != model.DefaultCalorieGoal || got.WaterGoal != model.DefaultWaterGoal {
		t.Errorf("goals = %v/%v, want defaults", got.CalorieGoal, got.WaterGoal)
	}

	rec = httptest.NewRecorder()
	h.Update(rec, authed("PUT", "/api/profile", `{"calorie_goal":1800}`, u))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d (body %s)", rec.Code, rec.Body.String())
	}
	updated := decodeBody[model.User](t, rec)
	if updated.CalorieGoal != 1800 {
		t.Errorf("calorie_goal = %v, want 1800", updated.CalorieGoal)
	}
	if updated.Username != "alice" || updated.WaterGoal != model.DefaultWaterGoal {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
}

func TestProfileUpdateValidation(t *testing.T) {
	env := setupEnv(t)
	u := env.createUser(t, "alice@example.com", "alice")
	h := NewProfileHandler(env.users, discardLogger())

	for _, body := range []string{
		`{"calorie_goal":0}`,
		`{"calorie_goal":20000}`,
		`{"water_goal":-1}`,
		`{"username":"  "}`,
	} {
		rec := httptest.NewRecorder()
		h.Update(rec, authed("PUT", "/api/profile", body, u))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, rec.Code)
		}
	}
}
