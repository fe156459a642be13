// Command seed fills the database with a small demo data set: two
// admission tiers, two places, a category pair, four users across the
// role ladder and two events with attendances and reviews.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eventure-app/eventure-api/internal/config"
	"github.com/eventure-app/eventure-api/internal/db"
	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/logger"
	"github.com/eventure-app/eventure-api/internal/repository/dao"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = seed(context.Background(), postgresDB); err != nil {
		return fmt.Errorf("failed to seed database -> %w", err)
	}

	zap.L().Info("database seeded")

	return nil
}

func seed(ctx context.Context, gdb *gorm.DB) error {
	admissionDAO := dao.NewAdmissionDAO(gdb)
	placeDAO := dao.NewPlaceDAO(gdb)
	categoryDAO := dao.NewCategoryDAO(gdb)
	userDAO := dao.NewUserDAO(gdb)
	eventDAO := dao.NewEventDAO(gdb)
	attendanceDAO := dao.NewAttendanceDAO(gdb)
	reviewDAO := dao.NewReviewDAO(gdb)

	free, err := admissionDAO.Insert(ctx, dao.Admission{Name: "free", Amount: 0})
	if err != nil {
		return err
	}
	adult, err := admissionDAO.Insert(ctx, dao.Admission{Name: "adult", Amount: 100})
	if err != nil {
		return err
	}

	d105, err := placeDAO.Insert(ctx, dao.Place{
		Name:        "d105",
		Address:     "B/D105",
		Description: "Room D105",
		Approved:    true,
	})
	if err != nil {
		return err
	}
	e112, err := placeDAO.Insert(ctx, dao.Place{
		Name:        "e112",
		Address:     "B/E112",
		Description: "Room E112",
		Approved:    true,
	})
	if err != nil {
		return err
	}

	education, err := categoryDAO.Insert(ctx, dao.Category{
		Name:        "education",
		Description: "Education events",
		Approved:    true,
	})
	if err != nil {
		return err
	}
	lecture, err := categoryDAO.Insert(ctx, dao.Category{
		Name:        "lecture",
		Description: "Lecture events",
		ParentID:    &education.ID,
		Approved:    true,
	})
	if err != nil {
		return err
	}

	users := []struct {
		name string
		role domain.Role
	}{
		{"user1", domain.RoleUser},
		{"user2", domain.RoleUser},
		{"mod", domain.RoleModerator},
		{"admin", domain.RoleAdministrator},
	}

	ids := make(map[string]uint, len(users))
	for _, u := range users {
		// Demo accounts use their name as the password.
		hash, err := bcrypt.GenerateFromPassword([]byte(u.name), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		created, err := userDAO.Insert(ctx, dao.User{
			Name:     u.name,
			Password: string(hash),
			Role:     int(u.role),
		})
		if err != nil {
			return err
		}
		ids[u.name] = created.ID
	}

	start := time.Now().Add(-24 * time.Hour)
	end := time.Now()

	iis, err := eventDAO.Insert(ctx, dao.Event{
		Name:          "IIS",
		StartDatetime: start,
		EndDatetime:   end,
		Capacity:      150,
		Description:   "IIS lecture",
		Image:         "https://blog.viettelcybersecurity.com/content/images/2022/07/Windows-IIS-1.png",
		OwnerID:       ids["user1"],
		PlaceID:       d105.ID,
	}, []uint{lecture.ID, education.ID}, []uint{adult.ID})
	if err != nil {
		return err
	}

	isa, err := eventDAO.Insert(ctx, dao.Event{
		Name:          "ISA",
		StartDatetime: start,
		EndDatetime:   end,
		Capacity:      150,
		Description:   "ISA lecture",
		Image:         "https://upload.wikimedia.org/wikipedia/commons/3/36/Isa1.jpg",
		Approved:      true,
		OwnerID:       ids["user2"],
		PlaceID:       e112.ID,
	}, []uint{education.ID}, []uint{free.ID})
	if err != nil {
		return err
	}

	attendances := []dao.Attendance{
		{EventID: iis.ID, UserID: ids["user1"], Approved: true, Admission: &adult.Amount},
		{EventID: iis.ID, UserID: ids["user2"], Approved: true, Admission: &adult.Amount},
		{EventID: iis.ID, UserID: ids["mod"], Approved: true, Admission: &adult.Amount},
		{EventID: isa.ID, UserID: ids["user1"], Approved: true, Admission: &free.Amount},
		{EventID: isa.ID, UserID: ids["user2"], Approved: true, Admission: &free.Amount},
	}
	for _, a := range attendances {
		if _, err = attendanceDAO.Insert(ctx, a); err != nil {
			return err
		}
	}

	reviews := []dao.Review{
		{Comment: "best lecture ever", Rating: 10, UserID: ids["user1"], EventID: iis.ID},
		{Comment: "it's too long", Rating: 7, UserID: ids["user2"], EventID: isa.ID},
	}
	for _, r := range reviews {
		if _, err = reviewDAO.Insert(ctx, r); err != nil {
			return err
		}
	}

	return nil
}
