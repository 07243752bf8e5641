package service_test

import (
	"context"
	"testing"

	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/repository"
	"github.com/maxviazov/buddyfinder-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pairKey struct {
	user  string
	sport int64
}

type fakeUserSportRepo struct {
	items     map[pairKey]model.UserSport
	order     []pairKey
	createErr error
}

func newFakeUserSportRepo() *fakeUserSportRepo {
	return &fakeUserSportRepo{items: map[pairKey]model.UserSport{}}
}

func (f *fakeUserSportRepo) ListByUser(_ context.Context, userID string) ([]model.UserSport, error) {
	out := []model.UserSport{}
	for _, k := range f.order {
		if it, ok := f.items[k]; ok && k.user == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeUserSportRepo) Exists(_ context.Context, userID string, sportID int64) (bool, error) {
	_, ok := f.items[pairKey{userID, sportID}]
	return ok, nil
}

func (f *fakeUserSportRepo) Create(_ context.Context, userID string, s model.UserSport) (model.UserSport, error) {
	if f.createErr != nil {
		return model.UserSport{}, f.createErr
	}
	k := pairKey{userID, s.SportID}
	f.items[k] = s
	f.order = append(f.order, k)
	return s, nil
}

func (f *fakeUserSportRepo) Update(_ context.Context, userID string, sportID int64, u model.UserSportUpdate) (model.UserSport, error) {
	k := pairKey{userID, sportID}
	it, ok := f.items[k]
	if !ok {
		return model.UserSport{}, repository.ErrNotFound
	}
	if u.Parameters != nil {
		it.Parameters = u.Parameters
	}
	if u.ClearCustomRange {
		it.CustomRangeKm = nil
	} else if u.CustomRangeKm != nil {
		it.CustomRangeKm = u.CustomRangeKm
	}
	f.items[k] = it
	return it, nil
}

func (f *fakeUserSportRepo) Delete(_ context.Context, userID string, sportID int64) error {
	k := pairKey{userID, sportID}
	if _, ok := f.items[k]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, k)
	return nil
}

var _ repository.UserSportRepository = (*fakeUserSportRepo)(nil)

func newUserSportService() (service.UserSportService, *fakeUserSportRepo, *fakeTx) {
	repo := newFakeUserSportRepo()
	tx := &fakeTx{}
	return service.NewUserSportService(tx, &fakeSportRepo{sports: catalogue}, repo, discard()), repo, tx
}

func TestUserSportService_Add(t *testing.T) {
	svc, repo, tx := newUserSportService()
	ctx := context.Background()

	out, err := svc.AddUserSport(ctx, "me", model.UserSport{
		SportID:    1,
		Parameters: model.SportParameters{"distance": 10.0, "pace": "5:30", "days": []any{"mon", "thu"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.SportID)
	assert.Equal(t, 1, tx.calls)

	_, err = svc.AddUserSport(ctx, "me", model.UserSport{SportID: 1, Parameters: model.SportParameters{"distance": 5.0}})
	assert.ErrorIs(t, err, service.ErrDuplicateSport)

	_, err = svc.AddUserSport(ctx, "me", model.UserSport{SportID: 99, Parameters: model.SportParameters{"distance": 5.0}})
	assert.ErrorIs(t, err, service.ErrSportNotFound)

	list, err := svc.ListUserSports(ctx, "me")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Len(t, repo.items, 1)
}

func TestUserSportService_Add_RaceMapsRepositoryErrors(t *testing.T) {
	svc, repo, _ := newUserSportService()
	repo.createErr = repository.ErrAlreadyExists
	_, err := svc.AddUserSport(context.Background(), "me", model.UserSport{SportID: 2, Parameters: model.SportParameters{"level": "4.0"}})
	assert.ErrorIs(t, err, service.ErrDuplicateSport)

	repo.createErr = repository.ErrConflict
	_, err = svc.AddUserSport(context.Background(), "me", model.UserSport{SportID: 2, Parameters: model.SportParameters{"level": "4.0"}})
	assert.ErrorIs(t, err, service.ErrSportNotFound)
}

func TestUserSportService_Add_Validation(t *testing.T) {
	cases := []struct {
		name  string
		in    model.UserSport
		field string
	}{
		{"zero sport id", model.UserSport{SportID: 0, Parameters: model.SportParameters{"a": 1.0}}, "sport_id"},
		{"no parameters", model.UserSport{SportID: 1}, "parameters"},
		{"nested object", model.UserSport{SportID: 1, Parameters: model.SportParameters{"x": map[string]any{"a": 1.0}}}, "parameters.x"},
		{"mixed array", model.UserSport{SportID: 1, Parameters: model.SportParameters{"x": []any{"a", 1.0}}}, "parameters.x"},
		{"null value", model.UserSport{SportID: 1, Parameters: model.SportParameters{"x": nil}}, "parameters.x"},
		{"range", model.UserSport{SportID: 1, Parameters: model.SportParameters{"a": true}, CustomRangeKm: intPtr(500)}, "custom_range_km"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, tx := newUserSportService()
			_, err := svc.AddUserSport(context.Background(), "me", tc.in)
			require.ErrorIs(t, err, service.ErrInvalidInput)
			fields := service.FieldErrors(err)
			require.NotEmpty(t, fields)
			assert.Equal(t, tc.field, fields[0].Field)
			assert.Zero(t, tx.calls)
		})
	}
}

func TestUserSportService_UpdateAndRemove(t *testing.T) {
	svc, _, _ := newUserSportService()
	ctx := context.Background()
	_, err := svc.AddUserSport(ctx, "me", model.UserSport{SportID: 2, Parameters: model.SportParameters{"level": "3.5"}, CustomRangeKm: intPtr(10)})
	require.NoError(t, err)

	_, err = svc.UpdateUserSport(ctx, "me", 2, model.UserSportUpdate{})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, "body", service.FieldErrors(err)[0].Field)

	out, err := svc.UpdateUserSport(ctx, "me", 2, model.UserSportUpdate{ClearCustomRange: true})
	require.NoError(t, err)
	assert.Nil(t, out.CustomRangeKm)
	assert.Equal(t, "3.5", out.Parameters["level"])

	_, err = svc.UpdateUserSport(ctx, "me", 1, model.UserSportUpdate{CustomRangeKm: intPtr(5)})
	assert.ErrorIs(t, err, service.ErrUserSportNotFound)

	require.NoError(t, svc.RemoveUserSport(ctx, "me", 2))
	assert.ErrorIs(t, svc.RemoveUserSport(ctx, "me", 2), service.ErrUserSportNotFound)
	assert.ErrorIs(t, svc.RemoveUserSport(ctx, "me", 0), service.ErrInvalidInput)
}
