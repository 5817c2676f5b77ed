package admin

import (
	"context"
	"testing"

	"powerup/database/repository"
	"powerup/database/repository/memory"
	"powerup/models"
	"powerup/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGym(t *testing.T) {
	svc := NewDefaultAdminService(memory.NewStore().Repositories(), nil)
	ctx := context.Background()

	gym, err := svc.CreateGym(ctx, models.CreateGymRequest{
		Name: "Central", Address: "Main St", MonthlyPrice: 50, AnnuallyPrice: 500,
		OpeningTime: "08:00", ClosingTime: "20:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 480, gym.OpeningTime)
	assert.Equal(t, 1200, gym.ClosingTime)
	assert.Equal(t, "08:00-20:00", gym.HoursLabel())

	bad := []models.CreateGymRequest{
		{Name: "A", OpeningTime: "8am", ClosingTime: "20:00"},
		{Name: "A", OpeningTime: "08:00", ClosingTime: "25:00"},
		{Name: "A", OpeningTime: "20:00", ClosingTime: "08:00"},
		{Name: "A", OpeningTime: "08:00", ClosingTime: "08:30"},
		{Name: " ", OpeningTime: "08:00", ClosingTime: "20:00"},
		{Name: "A", OpeningTime: "08:00", ClosingTime: "20:00", MonthlyPrice: -1},
	}
	for _, req := range bad {
		_, err := svc.CreateGym(ctx, req)
		assert.ErrorIs(t, err, utils.ErrValidation, "%+v", req)
	}

	gyms, err := svc.ListGyms(ctx)
	require.NoError(t, err)
	assert.Len(t, gyms, 1)
}

func TestCreateService(t *testing.T) {
	svc := NewDefaultAdminService(memory.NewStore().Repositories(), nil)
	ctx := context.Background()

	_, err := svc.CreateService(ctx, models.CreateServiceRequest{Name: "  "})
	assert.ErrorIs(t, err, utils.ErrValidation)

	for _, name := range []string{"Yoga", "Boxing"} {
		_, err := svc.CreateService(ctx, models.CreateServiceRequest{Name: name})
		require.NoError(t, err)
	}
	list, err := svc.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Boxing", list[0].Name)
}

type catalogue struct {
	svc     *DefaultAdminService
	repos   *repository.Repositories
	gym     *models.Gym
	yoga    *models.Service
	trainer *models.Trainer
}

func newCatalogue(t *testing.T) *catalogue {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	svc := NewDefaultAdminService(repos, nil)

	gym, err := svc.CreateGym(ctx, models.CreateGymRequest{Name: "Central", OpeningTime: "08:00", ClosingTime: "20:00"})
	require.NoError(t, err)
	yoga, err := svc.CreateService(ctx, models.CreateServiceRequest{Name: "Yoga"})
	require.NoError(t, err)
	tr := &models.Trainer{Name: "Ada", PhoneNumber: "1", GymID: gym.ID, ServiceIDs: []string{yoga.ID}}
	require.NoError(t, repos.Trainers.Create(ctx, tr))

	return &catalogue{svc: svc, repos: repos, gym: gym, yoga: yoga, trainer: tr}
}

func (c *catalogue) slot(t *testing.T, hour int) *models.Slot {
	t.Helper()
	s := &models.Slot{TrainerID: c.trainer.ID, GymID: c.gym.ID, DayOfWeek: 1, Hour: hour, ServiceIDs: []string{c.yoga.ID}}
	require.NoError(t, c.repos.Slots.Create(context.Background(), s))
	return s
}

func TestUpdateGym(t *testing.T) {
	c := newCatalogue(t)
	ctx := context.Background()
	c.slot(t, 9)

	_, err := c.svc.UpdateGym(ctx, c.gym.ID, models.CreateGymRequest{Name: "Central", OpeningTime: "10:00", ClosingTime: "20:00"})
	assert.ErrorIs(t, err, utils.ErrConflict, "the 09:00 slot would fall outside")

	_, err = c.svc.UpdateGym(ctx, c.gym.ID, models.CreateGymRequest{Name: "Central", OpeningTime: "20:00", ClosingTime: "08:00"})
	assert.ErrorIs(t, err, utils.ErrValidation)
	_, err = c.svc.UpdateGym(ctx, "missing", models.CreateGymRequest{Name: "X", OpeningTime: "08:00", ClosingTime: "20:00"})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	gym, err := c.svc.UpdateGym(ctx, c.gym.ID, models.CreateGymRequest{
		Name: "Central Plus", Address: "High St", MonthlyPrice: 60, OpeningTime: "06:00", ClosingTime: "22:00",
	})
	require.NoError(t, err)
	assert.Equal(t, c.gym.ID, gym.ID)

	stored, err := c.repos.Gyms.GetByID(ctx, c.gym.ID)
	require.NoError(t, err)
	assert.Equal(t, "Central Plus", stored.Name)
	assert.Equal(t, "06:00-22:00", stored.HoursLabel())
	assert.Equal(t, c.gym.CreatedAt, stored.CreatedAt)
}

func TestDeleteGymInUse(t *testing.T) {
	c := newCatalogue(t)
	ctx := context.Background()

	assert.ErrorIs(t, c.svc.DeleteGym(ctx, c.gym.ID), utils.ErrConflict, "a trainer belongs to it")

	// A slot held at the gym by a trainer based elsewhere still pins it.
	annex, err := c.svc.CreateGym(ctx, models.CreateGymRequest{Name: "Annex", OpeningTime: "08:00", ClosingTime: "20:00"})
	require.NoError(t, err)
	c.trainer.GymID = annex.ID
	require.NoError(t, c.repos.Trainers.Update(ctx, c.trainer))
	s := c.slot(t, 9)
	assert.ErrorIs(t, c.svc.DeleteGym(ctx, c.gym.ID), utils.ErrConflict)

	require.NoError(t, c.repos.Slots.Delete(ctx, s.ID))
	require.NoError(t, c.svc.DeleteGym(ctx, c.gym.ID))
	assert.ErrorIs(t, c.svc.DeleteGym(ctx, c.gym.ID), utils.ErrNotFound)

	gyms, err := c.svc.ListGyms(ctx)
	require.NoError(t, err)
	require.Len(t, gyms, 1)
	assert.Equal(t, "Annex", gyms[0].Name)
}

func TestUpdateService(t *testing.T) {
	c := newCatalogue(t)
	ctx := context.Background()

	svc, err := c.svc.UpdateService(ctx, c.yoga.ID, models.CreateServiceRequest{Name: " Hot Yoga "})
	require.NoError(t, err)
	assert.Equal(t, "Hot Yoga", svc.Name)

	_, err = c.svc.UpdateService(ctx, c.yoga.ID, models.CreateServiceRequest{Name: ""})
	assert.ErrorIs(t, err, utils.ErrValidation)
	_, err = c.svc.UpdateService(ctx, "missing", models.CreateServiceRequest{Name: "X"})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	stored, err := c.repos.Services.GetByID(ctx, c.yoga.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hot Yoga", stored.Name)
}

func TestDeleteService(t *testing.T) {
	c := newCatalogue(t)
	ctx := context.Background()
	s := c.slot(t, 9)

	assert.ErrorIs(t, c.svc.DeleteService(ctx, c.yoga.ID), utils.ErrConflict, "a slot offers it")

	require.NoError(t, c.repos.Slots.Delete(ctx, s.ID))
	require.NoError(t, c.svc.DeleteService(ctx, c.yoga.ID))

	_, err := c.repos.Services.GetByID(ctx, c.yoga.ID)
	assert.Error(t, err)
	tr, err := c.repos.Trainers.GetByID(ctx, c.trainer.ID)
	require.NoError(t, err)
	assert.Empty(t, tr.ServiceIDs, "withdrawn from the trainer")

	assert.ErrorIs(t, c.svc.DeleteService(ctx, c.yoga.ID), utils.ErrNotFound)
}

func TestAllAppointments(t *testing.T) {
	c := newCatalogue(t)
	ctx := context.Background()
	s := c.slot(t, 9)

	for _, a := range []models.Appointment{
		{TrainerID: c.trainer.ID, UserID: "u1", SlotID: s.ID, Date: "2025-01-06", TimeOfDay: 540, Status: models.StatusCompleted},
		{TrainerID: "other", UserID: "u2", SlotID: "s2", Date: "2025-01-20", TimeOfDay: 540, Status: models.StatusAwaiting},
		{TrainerID: c.trainer.ID, UserID: "u3", SlotID: s.ID, Date: "2025-01-13", TimeOfDay: 540, Status: models.StatusAccepted},
	} {
		a := a
		require.NoError(t, c.repos.Appointments.Create(ctx, &a))
	}

	all, err := c.svc.AllAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"2025-01-20", "2025-01-13", "2025-01-06"},
		[]string{all[0].Date, all[1].Date, all[2].Date})

	open, err := c.svc.AllAppointments(ctx, models.StatusAwaiting, models.StatusAccepted)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "u2", open[0].UserID)
}
