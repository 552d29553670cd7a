package filestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telvana/streampanel/internal/models"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	store, err := Open(path)
	require.NoError(t, err)
	return store, path
}

func TestOpenCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "store.json")
	store, err := Open(path)
	require.NoError(t, err)

	users, err := store.Users().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRoundTrip(t *testing.T) {
	store, _ := openTestStore(t)
	users := store.Users()
	ctx := context.Background()

	id, err := users.Create(ctx, &models.User{Email: "jo@example.com", Name: "Jo", Role: models.RoleCustomer})
	require.NoError(t, err)
	require.NotZero(t, id)

	got, found, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "jo@example.com", got.Email)

	byEmail, found, err := users.GetByEmail(ctx, "jo@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, id, byEmail.ID)

	require.NoError(t, users.AddCredits(ctx, id, 12.5))
	got, _, err = users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 12.5, got.Credits)

	require.NoError(t, users.Remove(ctx, id))
	_, found, err = users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSubscriptionCodeLookups(t *testing.T) {
	store, _ := openTestStore(t)
	subs := store.Subscriptions()
	ctx := context.Background()

	sub := &models.Subscription{
		UserID:    1,
		ChannelID: 2,
		Code:      "ABC123XY9Z",
		Duration:  models.PlanOneMonth,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
		Status:    models.SubscriptionStatusActive,
		User:      &models.User{ID: 1},
		Channel:   &models.Channel{ID: 2},
	}
	id, err := subs.Create(ctx, sub)
	require.NoError(t, err)

	exists, err := subs.ExistsByCode(ctx, "ABC123XY9Z")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = subs.ExistsByCode(ctx, "ZZZZZZZZZZ")
	require.NoError(t, err)
	assert.False(t, exists)

	got, found, err := subs.GetByCode(ctx, "ABC123XY9Z")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, id, got.ID)
	// Populated relations are not persisted.
	assert.Nil(t, got.User)
	assert.Nil(t, got.Channel)

	byChannel, err := subs.ListByChannel(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, byChannel, 1)

	byChannel, err = subs.ListByChannel(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, byChannel)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	channelID, err := store.Channels().Create(ctx, &models.Channel{Name: "sports-hd", URL: "http://stream.example/sports"})
	require.NoError(t, err)
	_, err = store.GiftCards().Create(ctx, &models.GiftCard{
		Code:      "GIFT000001",
		Credits:   10,
		Status:    models.GiftCardStatusAvailable,
		ExpiresAt: time.Now().AddDate(1, 0, 0),
	})
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)

	channel, found, err := reopened.Channels().GetByID(ctx, channelID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "sports-hd", channel.Name)

	card, found, err := reopened.GiftCards().GetByCode(ctx, "GIFT000001")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 10.0, card.Credits)

	// Ids keep counting from where the previous run stopped.
	nextID, err := reopened.Channels().Create(ctx, &models.Channel{Name: "news"})
	require.NoError(t, err)
	assert.Greater(t, nextID, channelID)
}

func TestUpdateReplacesRecord(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	catalog := store.Catalog()

	id, err := catalog.Create(ctx, &models.CatalogItem{Title: "Old Title", MediaType: models.MediaTypeMovie})
	require.NoError(t, err)

	item, _, err := catalog.GetByID(ctx, id)
	require.NoError(t, err)
	item.Title = "New Title"
	require.NoError(t, catalog.Update(ctx, item))

	got, found, err := catalog.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "New Title", got.Title)
}
