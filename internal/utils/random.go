package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kids-activity-tracker/backend/internal/domain"
	"github.com/kids-activity-tracker/backend/internal/schedule"
)

var firstNames = []string{
	"Olivia", "Liam", "Emma", "Noah", "Ava", "Ethan", "Sophia", "Mason",
	"Isabella", "Lucas", "Mia", "Oliver", "Amelia", "Elijah", "Harper", "James",
	"Evelyn", "Benjamin", "Luna", "Henry",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Martinez", "Wilson", "Anderson", "Taylor", "Thomas", "Moore",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	username := strings.ToLower(strings.ReplaceAll(fullName, " ", "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleParent,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomChild(userID int64) *domain.Child {
	born := time.Now().AddDate(-(rand.Intn(10) + 4), 0, -rand.Intn(365))

	return &domain.Child{
		UserID:      userID,
		Name:        firstNames[rand.Intn(len(firstNames))],
		DateOfBirth: schedule.FormatDate(born),
		ColorHex:    domain.ChildColorPalette[rand.Intn(len(domain.ChildColorPalette))],
	}
}

var activityNames = []string{
	"Swim Lessons", "Soccer Practice", "Piano Lessons", "Art Camp",
	"Gymnastics", "Karate", "Coding Club", "Ballet", "Basketball Clinic",
	"Science Explorers",
}

var providers = []string{
	"Community Rec Center", "YMCA", "Little Stars Academy", "City Sports League",
}

var weekdayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// GenerateRandomActivity produces one of the three schedule shapes an
// imported activity can have: a single date, explicit session dates, or a
// date range with a weekday filter.
func GenerateRandomActivity() *domain.Activity {
	activity := &domain.Activity{
		Name:     activityNames[rand.Intn(len(activityNames))],
		Provider: providers[rand.Intn(len(providers))],
		Location: fmt.Sprintf("Room %d", rand.Intn(20)+1),
	}

	startHour := rand.Intn(11) + 8 // 08:00 .. 18:00
	activity.StartTime = fmt.Sprintf("%02d:00", startHour)
	activity.EndTime = fmt.Sprintf("%02d:00", startHour+1)

	base := time.Now().AddDate(0, 0, rand.Intn(30))

	switch rand.Intn(3) {
	case 0:
		activity.ScheduledDate = schedule.FormatDate(base)
	case 1:
		n := rand.Intn(4) + 1
		for i := 0; i < n; i++ {
			activity.SessionDates = append(activity.SessionDates, schedule.FormatDate(base.AddDate(0, 0, i*7)))
		}
	case 2:
		activity.DateStart = schedule.FormatDate(base)
		activity.DateEnd = schedule.FormatDate(base.AddDate(0, rand.Intn(3)+1, 0))
		activity.DaysOfWeek = []string{weekdayNames[rand.Intn(len(weekdayNames))]}
	}

	return activity
}

// GenerateRandomBooking books the activity for the child on one of the dates
// the activity actually occurs on; returns nil if the activity has no
// occurrence in the next year.
func GenerateRandomBooking(child *domain.Child, activity *domain.Activity) *domain.ScheduledActivity {
	from := time.Now()
	dates := schedule.ExpandActivityDates(activity, from, from.AddDate(1, 0, 0))
	if len(dates) == 0 {
		return nil
	}

	return &domain.ScheduledActivity{
		ChildID:       child.ID,
		ActivityID:    activity.ID,
		ActivityName:  activity.Name,
		ScheduledDate: dates[rand.Intn(len(dates))],
		StartTime:     activity.StartTime,
		EndTime:       activity.EndTime,
	}
}
