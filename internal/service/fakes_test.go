package service

import (
	"context"
	"time"

	"github.com/telvana/streampanel/internal/models"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users  map[int64]*models.User
	lastID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, bool, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, false, nil
	}
	copied := *user
	return &copied, true, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, user := range f.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	f.lastID++
	user.ID = f.lastID
	copied := *user
	f.users[user.ID] = &copied
	return user.ID, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) AddCredits(_ context.Context, id int64, delta float64) error {
	if user, ok := f.users[id]; ok {
		user.Credits += delta
	}
	return nil
}

func (f *fakeUserRepo) Remove(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

type fakeChannelRepo struct {
	channels map[int64]*models.Channel
	lastID   int64
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{channels: make(map[int64]*models.Channel)}
}

func (f *fakeChannelRepo) add(id int64, name string) {
	f.channels[id] = &models.Channel{ID: id, Name: name, URL: "http://stream.example/" + name}
}

func (f *fakeChannelRepo) GetByID(_ context.Context, id int64) (*models.Channel, bool, error) {
	channel, ok := f.channels[id]
	if !ok {
		return nil, false, nil
	}
	copied := *channel
	return &copied, true, nil
}

func (f *fakeChannelRepo) List(_ context.Context) ([]*models.Channel, error) {
	var channels []*models.Channel
	for _, channel := range f.channels {
		copied := *channel
		channels = append(channels, &copied)
	}
	return channels, nil
}

func (f *fakeChannelRepo) Create(_ context.Context, channel *models.Channel) (int64, error) {
	f.lastID++
	channel.ID = f.lastID
	copied := *channel
	f.channels[channel.ID] = &copied
	return channel.ID, nil
}

func (f *fakeChannelRepo) Update(_ context.Context, channel *models.Channel) error {
	copied := *channel
	f.channels[channel.ID] = &copied
	return nil
}

func (f *fakeChannelRepo) Remove(_ context.Context, id int64) error {
	delete(f.channels, id)
	return nil
}

type fakeSubscriptionRepo struct {
	subs   map[int64]*models.Subscription
	lastID int64
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[int64]*models.Subscription)}
}

func (f *fakeSubscriptionRepo) GetByID(_ context.Context, id int64) (*models.Subscription, bool, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, false, nil
	}
	copied := *sub
	return &copied, true, nil
}

func (f *fakeSubscriptionRepo) GetByCode(_ context.Context, code string) (*models.Subscription, bool, error) {
	for _, sub := range f.subs {
		if sub.Code == code {
			copied := *sub
			return &copied, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeSubscriptionRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, found, err := f.GetByCode(ctx, code)
	return found, err
}

func (f *fakeSubscriptionRepo) List(_ context.Context) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	for _, sub := range f.subs {
		copied := *sub
		subs = append(subs, &copied)
	}
	return subs, nil
}

func (f *fakeSubscriptionRepo) ListByChannel(_ context.Context, channelID int64) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	for _, sub := range f.subs {
		if sub.ChannelID == channelID {
			copied := *sub
			subs = append(subs, &copied)
		}
	}
	return subs, nil
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, sub *models.Subscription) (int64, error) {
	f.lastID++
	sub.ID = f.lastID
	copied := *sub
	copied.User = nil
	copied.Channel = nil
	f.subs[sub.ID] = &copied
	return sub.ID, nil
}

func (f *fakeSubscriptionRepo) Update(_ context.Context, sub *models.Subscription) error {
	copied := *sub
	copied.User = nil
	copied.Channel = nil
	f.subs[sub.ID] = &copied
	return nil
}

func (f *fakeSubscriptionRepo) Remove(_ context.Context, id int64) error {
	delete(f.subs, id)
	return nil
}

type fakeGiftCardRepo struct {
	cards  map[int64]*models.GiftCard
	lastID int64
}

func newFakeGiftCardRepo() *fakeGiftCardRepo {
	return &fakeGiftCardRepo{cards: make(map[int64]*models.GiftCard)}
}

func (f *fakeGiftCardRepo) GetByID(_ context.Context, id int64) (*models.GiftCard, bool, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, false, nil
	}
	copied := *card
	return &copied, true, nil
}

func (f *fakeGiftCardRepo) GetByCode(_ context.Context, code string) (*models.GiftCard, bool, error) {
	for _, card := range f.cards {
		if card.Code == code {
			copied := *card
			return &copied, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeGiftCardRepo) List(_ context.Context) ([]*models.GiftCard, error) {
	var cards []*models.GiftCard
	for _, card := range f.cards {
		copied := *card
		cards = append(cards, &copied)
	}
	return cards, nil
}

func (f *fakeGiftCardRepo) ListExpired(_ context.Context, now time.Time) ([]*models.GiftCard, error) {
	var cards []*models.GiftCard
	for _, card := range f.cards {
		if card.Status == models.GiftCardStatusAvailable && card.ExpiresAt.Before(now) {
			copied := *card
			cards = append(cards, &copied)
		}
	}
	return cards, nil
}

func (f *fakeGiftCardRepo) Create(_ context.Context, card *models.GiftCard) (int64, error) {
	f.lastID++
	card.ID = f.lastID
	copied := *card
	f.cards[card.ID] = &copied
	return card.ID, nil
}

func (f *fakeGiftCardRepo) Update(_ context.Context, card *models.GiftCard) error {
	copied := *card
	f.cards[card.ID] = &copied
	return nil
}

func (f *fakeGiftCardRepo) Remove(_ context.Context, id int64) error {
	delete(f.cards, id)
	return nil
}
