package repository

import (
	"powerup/database"
	appointmentRepo "powerup/database/repository/appointment"
	catalogueRepo "powerup/database/repository/catalogue"
	gymRepo "powerup/database/repository/gym"
	notificationRepo "powerup/database/repository/notification"
	ratingRepo "powerup/database/repository/rating"
	slotRepo "powerup/database/repository/slot"
	trainerRepo "powerup/database/repository/trainer"
	userRepo "powerup/database/repository/user"
)

// Re-export the repository interfaces.
type (
	GymRepository          = gymRepo.GymRepository
	TrainerRepository      = trainerRepo.TrainerRepository
	ServiceRepository      = catalogueRepo.ServiceRepository
	SlotRepository         = slotRepo.SlotRepository
	AppointmentRepository  = appointmentRepo.AppointmentRepository
	NotificationRepository = notificationRepo.NotificationRepository
	RatingRepository       = ratingRepo.RatingRepository
	UserRepository         = userRepo.UserRepository
	TxRunner               = database.TxRunner
)

// Repositories bundles one implementation of every entity store together
// with the transaction runner that scopes them.
type Repositories struct {
	Gyms          GymRepository
	Trainers      TrainerRepository
	Services      ServiceRepository
	Slots         SlotRepository
	Appointments  AppointmentRepository
	Notifications NotificationRepository
	Ratings       RatingRepository
	Users         UserRepository
	Tx            database.TxRunner
}

// NewMongoRepositories wires every repository onto the global Mongo client.
// database.InitDB must have been called.
func NewMongoRepositories() *Repositories {
	return &Repositories{
		Gyms:          gymRepo.NewMongoGymRepo(),
		Trainers:      trainerRepo.NewMongoTrainerRepo(),
		Services:      catalogueRepo.NewMongoServiceRepo(),
		Slots:         slotRepo.NewMongoSlotRepo(),
		Appointments:  appointmentRepo.NewMongoAppointmentRepo(),
		Notifications: notificationRepo.NewMongoNotificationRepo(),
		Ratings:       ratingRepo.NewMongoRatingRepo(),
		Users:         userRepo.NewMongoUserRepo(),
		Tx:            database.NewMongoTxRunner(),
	}
}

// Indexed returns the repositories that manage their own indexes.
func (r *Repositories) Indexed() []database.IndexBuilder {
	var out []database.IndexBuilder
	for _, repo := range []interface{}{
		r.Gyms, r.Trainers, r.Services, r.Slots,
		r.Appointments, r.Notifications, r.Ratings, r.Users,
	} {
		if ib, ok := repo.(database.IndexBuilder); ok {
			out = append(out, ib)
		}
	}
	return out
}
