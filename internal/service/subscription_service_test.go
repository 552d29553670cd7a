package service

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telvana/streampanel/internal/apperrors"
	"github.com/telvana/streampanel/internal/models"
	"github.com/telvana/streampanel/internal/transfer"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{10}$`)

func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }

func newTestIssuer() (*subscriptionService, *fakeUserRepo, *fakeChannelRepo, *fakeSubscriptionRepo) {
	users := newFakeUserRepo()
	channels := newFakeChannelRepo()
	channels.add(7, "sports-hd")
	subs := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(users, channels, subs).(*subscriptionService)
	return svc, users, channels, subs
}

func TestCreateSubscription(t *testing.T) {
	svc, users, _, subs := newTestIssuer()

	created, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail:      "a@b.com",
		ChannelID:      int64Ptr(7),
		DurationMonths: floatPtr(6),
	})
	require.NoError(t, err)

	assert.Equal(t, models.PlanSixMonths, created.Duration)
	assert.Equal(t, models.SubscriptionStatusActive, created.Status)
	assert.Regexp(t, codePattern, created.Code)
	assert.Equal(t, created.EndDate, created.StartDate.AddDate(0, 6, 0))
	require.NotNil(t, created.User)
	require.NotNil(t, created.Channel)
	assert.Equal(t, int64(7), created.Channel.ID)

	// Exactly one user was upserted, with zero credits and the derived name.
	require.Len(t, users.users, 1)
	user := users.users[created.UserID]
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "a", user.Name)
	assert.Zero(t, user.Credits)

	require.Len(t, subs.subs, 1)
}

func TestCreateSubscriptionPlanBuckets(t *testing.T) {
	cases := []struct {
		months float64
		plan   string
	}{
		{1, models.PlanOneMonth},
		{3, models.PlanThreeMonths},
		{4, models.PlanSixMonths},
		{6, models.PlanSixMonths},
		{7, models.PlanTwelveMonths},
		{12, models.PlanTwelveMonths},
	}

	svc, _, _, _ := newTestIssuer()
	for i, tc := range cases {
		created, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
			UserEmail:      fmt.Sprintf("buyer%d@example.com", i),
			ChannelID:      int64Ptr(7),
			DurationMonths: floatPtr(tc.months),
		})
		require.NoError(t, err)
		assert.Equalf(t, tc.plan, created.Duration, "months=%v", tc.months)
		// The plan label is a bucket; the end date still reflects the
		// literal month count.
		assert.Equal(t, created.StartDate.AddDate(0, int(tc.months), 0), created.EndDate)
	}
}

func TestCreateSubscriptionMonthRollover(t *testing.T) {
	svc, _, _, _ := newTestIssuer()
	svc.now = func() time.Time {
		return time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC)
	}

	created, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail: "a@b.com",
		ChannelID: int64Ptr(7),
	})
	require.NoError(t, err)

	// Jan 31 + 1 calendar month normalizes through Feb 31 to Mar 3.
	assert.Equal(t, time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC), created.EndDate)
}

func TestCreateSubscriptionExplicitStartDate(t *testing.T) {
	svc, _, _, _ := newTestIssuer()

	created, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail:      "a@b.com",
		ChannelID:      int64Ptr(7),
		DurationMonths: floatPtr(2),
		StartDate:      "2025-06-15",
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), created.StartDate)
	assert.Equal(t, time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC), created.EndDate)
	// 2 requested months are sold under the three-month tier.
	assert.Equal(t, models.PlanThreeMonths, created.Duration)
}

func TestCreateSubscriptionCallerCode(t *testing.T) {
	svc, _, _, _ := newTestIssuer()
	generated := 0
	svc.generate = func() (string, error) {
		generated++
		return newCode()
	}

	created, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail: "a@b.com",
		ChannelID: int64Ptr(7),
		Code:      "FAMILY2025",
	})
	require.NoError(t, err)
	assert.Equal(t, "FAMILY2025", created.Code)
	assert.Zero(t, generated)
}

func TestCreateSubscriptionCodeFirstTryAccepted(t *testing.T) {
	svc, _, _, _ := newTestIssuer()
	generated := 0
	svc.generate = func() (string, error) {
		generated++
		return "CODE000001", nil
	}

	created, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail: "a@b.com",
		ChannelID: int64Ptr(7),
	})
	require.NoError(t, err)
	assert.Equal(t, "CODE000001", created.Code)
	assert.Equal(t, 1, generated)
}

func TestCreateSubscriptionCodeRetryOnCollision(t *testing.T) {
	svc, _, _, subs := newTestIssuer()
	subs.subs[99] = &models.Subscription{ID: 99, Code: "TAKEN00001"}
	subs.lastID = 99

	candidates := []string{"TAKEN00001", "FRESH00001"}
	generated := 0
	svc.generate = func() (string, error) {
		code := candidates[generated]
		generated++
		return code, nil
	}

	created, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail: "a@b.com",
		ChannelID: int64Ptr(7),
	})
	require.NoError(t, err)
	assert.Equal(t, "FRESH00001", created.Code)
	assert.Equal(t, 2, generated)
}

func TestCreateSubscriptionCodeRetryExhausted(t *testing.T) {
	svc, _, _, subs := newTestIssuer()
	subs.subs[99] = &models.Subscription{ID: 99, Code: "TAKEN00001"}
	subs.lastID = 99

	generated := 0
	svc.generate = func() (string, error) {
		generated++
		return "TAKEN00001", nil
	}

	// After five colliding attempts the last candidate is used anyway.
	created, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail: "a@b.com",
		ChannelID: int64Ptr(7),
	})
	require.NoError(t, err)
	assert.Equal(t, "TAKEN00001", created.Code)
	assert.Equal(t, 5, generated)
}

func TestCreateSubscriptionExistingUserByID(t *testing.T) {
	svc, users, _, _ := newTestIssuer()
	id, err := users.Create(context.Background(), &models.User{Email: "known@example.com", Credits: 12})
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserID:    int64Ptr(id),
		ChannelID: int64Ptr(7),
		Credit:    3,
	})
	require.NoError(t, err)
	assert.Equal(t, id, created.UserID)
	assert.Equal(t, 3.0, created.Credits)
	// No second user appears.
	assert.Len(t, users.users, 1)
}

func TestCreateSubscriptionUnknownUser(t *testing.T) {
	svc, _, _, subs := newTestIssuer()

	_, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserID:    int64Ptr(42),
		ChannelID: int64Ptr(7),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, subs.subs)
}

func TestCreateSubscriptionMissingChannel(t *testing.T) {
	svc, _, _, subs := newTestIssuer()

	_, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail: "a@b.com",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, subs.subs)
}

func TestCreateSubscriptionUnknownChannel(t *testing.T) {
	svc, _, _, _ := newTestIssuer()

	_, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail: "a@b.com",
		ChannelID: int64Ptr(123),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateSubscriptionNoUserIdentity(t *testing.T) {
	svc, _, _, _ := newTestIssuer()

	_, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		ChannelID: int64Ptr(7),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateSubscriptionInvalidDuration(t *testing.T) {
	svc, _, _, _ := newTestIssuer()

	for _, months := range []float64{0, -2} {
		_, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
			UserEmail:      "a@b.com",
			ChannelID:      int64Ptr(7),
			DurationMonths: floatPtr(months),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	}
}

func TestUpdateSubscriptionPatch(t *testing.T) {
	svc, _, _, _ := newTestIssuer()
	now := time.Date(2025, time.May, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	created, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail: "a@b.com",
		ChannelID: int64Ptr(7),
		Credit:    5,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), &transfer.UpdateSubscriptionRequest{
		ID:             created.ID,
		DurationMonths: floatPtr(3),
	})
	require.NoError(t, err)

	// durationMonths recomputes the end date from now, leaving code and
	// credits untouched.
	assert.Equal(t, now.AddDate(0, 3, 0), updated.EndDate)
	assert.Equal(t, models.PlanThreeMonths, updated.Duration)
	assert.Equal(t, created.Code, updated.Code)
	assert.Equal(t, 5.0, updated.Credits)
	assert.Equal(t, created.Status, updated.Status)
}

func TestUpdateSubscriptionStatus(t *testing.T) {
	svc, _, _, _ := newTestIssuer()

	created, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail: "a@b.com",
		ChannelID: int64Ptr(7),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), &transfer.UpdateSubscriptionRequest{
		ID:     created.ID,
		Status: stringPtr(models.SubscriptionStatusDisabled),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusDisabled, updated.Status)
	assert.Equal(t, created.EndDate, updated.EndDate)
}

func TestUpdateSubscriptionNotFound(t *testing.T) {
	svc, _, _, _ := newTestIssuer()

	_, err := svc.Update(context.Background(), &transfer.UpdateSubscriptionRequest{
		ID:     1234,
		Credit: floatPtr(1),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteSubscriptionByCode(t *testing.T) {
	svc, _, _, subs := newTestIssuer()

	first, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail: "a@b.com",
		ChannelID: int64Ptr(7),
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), &transfer.CreateSubscriptionRequest{
		UserEmail: "c@d.com",
		ChannelID: int64Ptr(7),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 0, first.Code))

	_, found, _ := subs.GetByID(context.Background(), first.ID)
	assert.False(t, found)
	_, found, _ = subs.GetByID(context.Background(), second.ID)
	assert.True(t, found)
}

func TestDeleteSubscriptionNotFound(t *testing.T) {
	svc, _, _, _ := newTestIssuer()

	err := svc.Delete(context.Background(), 987, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	err = svc.Delete(context.Background(), 0, "NOSUCHCODE")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteSubscriptionRequiresIdentifier(t *testing.T) {
	svc, _, _, _ := newTestIssuer()

	err := svc.Delete(context.Background(), 0, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGeneratedCodeAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := newCode()
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
	}
}
