package repo

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/techclub/club-portal/internal/models"
)

func testRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A second connection to :memory: would see an empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return New(db)
}

func TestCreateUserDuplicate(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	u := &models.User{Username: "alice", Email: "alice@example.edu", PasswordHash: "x", Role: models.RoleMember, IsActive: true}
	require.NoError(t, r.CreateUser(ctx, u))

	dup := &models.User{Username: "alice", Email: "other@example.edu", PasswordHash: "x", Role: models.RoleMember, IsActive: true}
	err := r.CreateUser(ctx, dup)
	require.ErrorIs(t, err, ErrDuplicate)

	n, err := r.CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestGetUserByIdentifier(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	u := &models.User{Username: "bob", Email: "bob@example.edu", PasswordHash: "x", Role: models.RoleMember, IsActive: true}
	require.NoError(t, r.CreateUser(ctx, u))

	byName, err := r.GetUserByIdentifier(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	byMail, err := r.GetUserByIdentifier(ctx, "bob@example.edu")
	require.NoError(t, err)
	require.Equal(t, u.ID, byMail.ID)

	_, err = r.GetUserByIdentifier(ctx, "nobody")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListAnnouncementsFilterAndOrder(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	mk := func(title, priority string, active bool, publishedDaysAgo int) {
		a := &models.Announcement{
			Title:       title,
			Content:     "content",
			Category:    "General",
			Priority:    priority,
			Author:      "club",
			PublishDate: time.Now().AddDate(0, 0, -publishedDaysAgo),
			IsActive:    active,
		}
		require.NoError(t, r.CreateAnnouncement(ctx, a))
	}
	mk("old urgent", "Urgent", true, 10)
	mk("fresh medium", "Medium", true, 1)
	mk("inactive urgent", "Urgent", false, 0)

	total, items, err := r.ListAnnouncements(ctx, AnnouncementFilter{ActiveOnly: true}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	require.Equal(t, "fresh medium", items[0].Title) // newest first

	total, items, err = r.ListAnnouncements(ctx, AnnouncementFilter{Priority: "Urgent", ActiveOnly: true}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "old urgent", items[0].Title)
}

func TestSearchAnnouncements(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	a := &models.Announcement{
		Title: "Hackathon Registration", Content: "sign up now",
		Category: "Event", Priority: "High", Author: "club",
		PublishDate: time.Now(), IsActive: true,
	}
	require.NoError(t, r.CreateAnnouncement(ctx, a))

	total, items, err := r.SearchAnnouncements(ctx, "hackathon", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, a.ID, items[0].ID)

	total, _, err = r.SearchAnnouncements(ctx, "robotics", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
}

func TestDeleteAnnouncementNotFound(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	a := &models.Announcement{
		Title: "t", Content: "c", Category: "General", Priority: "Low",
		Author: "club", PublishDate: time.Now(), IsActive: true,
	}
	require.NoError(t, r.CreateAnnouncement(ctx, a))
	require.NoError(t, r.DeleteAnnouncement(ctx, a.ID))
	require.ErrorIs(t, r.DeleteAnnouncement(ctx, a.ID), gorm.ErrRecordNotFound)
}

func TestListEventsUpcoming(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	mk := func(title, status string, daysFromNow int, public bool) {
		e := &models.Event{
			Title: title, Description: "d", Date: time.Now().AddDate(0, 0, daysFromNow),
			Time: "18:00", Location: "Lab", Category: "Workshop", Organizer: "club",
			Status: status, IsPublic: public,
		}
		require.NoError(t, r.CreateEvent(ctx, e))
	}
	mk("past", "Completed", -7, true)
	mk("soon", "Upcoming", 2, true)
	mk("later", "Upcoming", 9, true)
	mk("hidden", "Upcoming", 3, false)

	total, items, err := r.ListEvents(ctx, EventFilter{Upcoming: true, PublicOnly: true}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Equal(t, "soon", items[0].Title) // soonest first

	got, err := r.ListUpcomingEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "soon", got[0].Title)
}

func TestListActivitiesVisibility(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	mk := func(title, visibility string, highlighted bool) {
		a := &models.Activity{
			Title: title, Description: "d", Type: "Project", Status: "Completed",
			StartDate: time.Now(), Leader: "lead", Visibility: visibility,
			IsHighlighted: highlighted,
		}
		require.NoError(t, r.CreateActivity(ctx, a))
	}
	mk("public", models.VisibilityPublic, true)
	mk("members", models.VisibilityMembers, false)
	mk("private", models.VisibilityPrivate, true)

	total, _, err := r.ListActivities(ctx, ActivityFilter{PublicOnly: true}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	highlighted, err := r.ListHighlightedActivities(ctx, 6)
	require.NoError(t, err)
	require.Len(t, highlighted, 1)
	require.Equal(t, "public", highlighted[0].Title)
}

func TestListLeadersOrderAndMain(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	mk := func(name, position string, order int, active bool) {
		l := &models.Leader{
			Name: name, Position: position, Department: "CSE",
			Email: name + "@example.edu", IsActive: active, DisplayOrder: order,
		}
		require.NoError(t, r.CreateLeader(ctx, l))
	}
	mk("carol", "Club President", 2, true)
	mk("dan", "Chancellor", 1, true)
	mk("eve", "HOD", 3, false)

	total, items, err := r.ListLeaders(ctx, LeaderFilter{ActiveOnly: true}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Equal(t, "dan", items[0].Name)

	main, err := r.ListMainLeaders(ctx)
	require.NoError(t, err)
	require.Len(t, main, 1) // eve is inactive
	require.Equal(t, "dan", main[0].Name)
}
