package contract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/repository"
)

// ProfileSeed describes a profile row inserted directly by the harness.
// A nil Location or RangeKm leaves the column NULL.
type ProfileSeed struct {
	Username string
	Location *model.GeoPoint
	RangeKm  *int
}

// Seeder prepares rows the repositories under test cannot create themselves.
type Seeder interface {
	Profile(ctx context.Context, seed ProfileSeed) (string, error)
	SportID(ctx context.Context, name string) (int64, error)
}

type ProfileFactory func(t *testing.T) (repository.ProfileRepository, Seeder, func())

type SportFactory func(t *testing.T) (repository.SportRepository, func())

type UserSportFactory func(t *testing.T) (repository.UserSportRepository, Seeder, func())

type MatchFactory func(t *testing.T) (fn repository.MatchFunction, sports repository.UserSportRepository, seed Seeder, cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, sports repository.UserSportRepository, seed Seeder, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func intPtr(v int) *int { return &v }

func RunProfileRepositoryContract(t *testing.T, makeRepo ProfileFactory) {
	t.Helper()

	t.Run("get_seeded_profile", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id, err := seed.Profile(ctx, ProfileSeed{Username: "anna", Location: model.NewGeoPoint(21.01, 52.23), RangeKm: intPtr(15)})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		got, err := repo.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != id || got.Username == nil || *got.Username != "anna" {
			t.Fatalf("mismatch: %+v", got)
		}
		if got.Location == nil || got.DefaultRangeKm == nil || *got.DefaultRangeKm != 15 {
			t.Fatalf("expected location and range, got %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000001")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("partial_update_keeps_other_columns", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id, err := seed.Profile(ctx, ProfileSeed{Username: "bart"})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		name := "Bart Runner"
		out, err := repo.Update(ctx, id, model.ProfileUpdate{
			DisplayName: &name,
			Location:    model.NewGeoPoint(19.94, 50.06),
			SocialLinks: map[string]string{"strava": "https://strava.com/athletes/1"},
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if out.DisplayName == nil || *out.DisplayName != name {
			t.Fatalf("display name not updated: %+v", out)
		}
		if out.Location == nil || out.Location.Longitude() < 19.93 || out.Location.Latitude() > 50.07 {
			t.Fatalf("location not updated: %+v", out.Location)
		}
		if out.DefaultRangeKm != nil {
			t.Fatalf("range must stay NULL, got %d", *out.DefaultRangeKm)
		}
		if out.SocialLinks["strava"] == "" || out.Username == nil || *out.Username != "bart" {
			t.Fatalf("unexpected profile: %+v", out)
		}
	})

	t.Run("update_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		rng := 5
		_, err := repo.Update(context.Background(), "00000000-0000-0000-0000-000000000002", model.ProfileUpdate{DefaultRangeKm: &rng})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunSportRepositoryContract(t *testing.T, makeRepo SportFactory) {
	t.Helper()

	t.Run("list_seeded_catalogue", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		sports, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(sports) == 0 {
			t.Fatalf("expected seeded sports")
		}
		for i := 1; i < len(sports); i++ {
			if sports[i-1].ID >= sports[i].ID {
				t.Fatalf("sports not ordered by id: %+v", sports)
			}
		}
		ok, err := repo.Exists(ctx, sports[0].ID)
		if err != nil || !ok {
			t.Fatalf("expected sport %d to exist, ok=%v err=%v", sports[0].ID, ok, err)
		}
		ok, err = repo.Exists(ctx, 987654321)
		if err != nil || ok {
			t.Fatalf("expected missing sport, ok=%v err=%v", ok, err)
		}
	})
}

func RunUserSportRepositoryContract(t *testing.T, makeRepo UserSportFactory) {
	t.Helper()

	t.Run("create_list_update_delete", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		userID, err := seed.Profile(ctx, ProfileSeed{Username: "cleo"})
		if err != nil {
			t.Fatalf("seed profile: %v", err)
		}
		sportID, err := seed.SportID(ctx, "running")
		if err != nil {
			t.Fatalf("seed sport: %v", err)
		}

		created, err := repo.Create(ctx, userID, model.UserSport{
			SportID:       sportID,
			Parameters:    model.SportParameters{"distance": 10.0, "pace": "5:30"},
			CustomRangeKm: intPtr(25),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.Name != "running" || created.Parameters["pace"] != "5:30" {
			t.Fatalf("unexpected created row: %+v", created)
		}

		list, err := repo.ListByUser(ctx, userID)
		if err != nil || len(list) != 1 {
			t.Fatalf("list: len=%d err=%v", len(list), err)
		}

		updated, err := repo.Update(ctx, userID, sportID, model.UserSportUpdate{ClearCustomRange: true})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.CustomRangeKm != nil || updated.Parameters["pace"] != "5:30" {
			t.Fatalf("unexpected updated row: %+v", updated)
		}

		if err := repo.Delete(ctx, userID, sportID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := repo.Delete(ctx, userID, sportID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("create_duplicate_conflict", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		userID, _ := seed.Profile(ctx, ProfileSeed{Username: "dora"})
		sportID, _ := seed.SportID(ctx, "tennis")
		in := model.UserSport{SportID: sportID, Parameters: model.SportParameters{"level": "3.5"}}
		if _, err := repo.Create(ctx, userID, in); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, err := repo.Create(ctx, userID, in); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		ok, err := repo.Exists(ctx, userID, sportID)
		if err != nil || !ok {
			t.Fatalf("expected existing pair, ok=%v err=%v", ok, err)
		}
	})

	t.Run("update_missing_pair", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		userID, _ := seed.Profile(ctx, ProfileSeed{Username: "emil"})
		_, err := repo.Update(ctx, userID, 1, model.UserSportUpdate{CustomRangeKm: intPtr(3)})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

type matchDocument struct {
	TotalCount   int               `json:"total_count"`
	MatchedUsers []json.RawMessage `json:"matched_users"`
}

func RunMatchFunctionContract(t *testing.T, makeFn MatchFactory) {
	t.Helper()

	t.Run("incomplete_profile_sqlstate", func(t *testing.T) {
		fn, _, seed, cleanup := makeFn(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id, err := seed.Profile(ctx, ProfileSeed{Username: "nolocation", RangeKm: intPtr(10)})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err = fn.Call(ctx, id, model.Window{Limit: 20})
		if got := repository.SQLState(err); got != repository.CodeProfileIncomplete {
			t.Fatalf("expected SQLSTATE %s, got %q (%v)", repository.CodeProfileIncomplete, got, err)
		}
	})

	t.Run("nearby_users_sharing_a_sport", func(t *testing.T) {
		fn, sports, seed, cleanup := makeFn(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		running, err := seed.SportID(ctx, "running")
		if err != nil {
			t.Fatalf("sport: %v", err)
		}
		me, _ := seed.Profile(ctx, ProfileSeed{Username: "me", Location: model.NewGeoPoint(21.00, 52.20), RangeKm: intPtr(10)})
		near, _ := seed.Profile(ctx, ProfileSeed{Username: "near", Location: model.NewGeoPoint(21.01, 52.21), RangeKm: intPtr(10)})
		far, _ := seed.Profile(ctx, ProfileSeed{Username: "far", Location: model.NewGeoPoint(19.94, 50.06), RangeKm: intPtr(10)})
		for _, id := range []string{me, near, far} {
			if _, err := sports.Create(ctx, id, model.UserSport{SportID: running, Parameters: model.SportParameters{"distance": 5.0}}); err != nil {
				t.Fatalf("seed user sport: %v", err)
			}
		}

		raw, err := fn.Call(ctx, me, model.Window{Limit: 20})
		if err != nil {
			t.Fatalf("call: %v", err)
		}
		var doc matchDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if doc.TotalCount != 1 || len(doc.MatchedUsers) != 1 {
			t.Fatalf("expected exactly the nearby user, got %s", raw)
		}

		raw, err = fn.Call(ctx, me, model.Window{Limit: 20, Offset: 5})
		if err != nil {
			t.Fatalf("call past end: %v", err)
		}
		doc = matchDocument{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if doc.TotalCount != 1 || len(doc.MatchedUsers) != 0 {
			t.Fatalf("expected empty page with total 1, got %s", raw)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, sports, seed, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		userID, _ := seed.Profile(ctx, ProfileSeed{Username: "tx-commit"})
		sportID, _ := seed.SportID(ctx, "diving")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := sports.Create(ctx, userID, model.UserSport{SportID: sportID, Parameters: model.SportParameters{"depth": 20.0}})
			return err
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if ok, err := sports.Exists(ctx, userID, sportID); err != nil || !ok {
			t.Fatalf("expected committed row visible, ok=%v err=%v", ok, err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, sports, seed, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		userID, _ := seed.Profile(ctx, ProfileSeed{Username: "tx-rollback"})
		sportID, _ := seed.SportID(ctx, "diving")
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := sports.Create(ctx, userID, model.UserSport{SportID: sportID, Parameters: model.SportParameters{"depth": 20.0}}); err != nil {
				return err
			}
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if ok, err := sports.Exists(ctx, userID, sportID); err != nil || ok {
			t.Fatalf("expected row rolled back, ok=%v err=%v", ok, err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
