package filestore

import (
	"context"
	"time"

	"github.com/telvana/streampanel/internal/models"
	"github.com/telvana/streampanel/internal/repository"
)

// The adapters below satisfy the repository interfaces over the shared JSON
// document. Context is accepted for interface parity; file access is local
// and never blocks on I/O beyond a single write.

func (s *Store) Users() repository.UserRepository                 { return &userStore{s} }
func (s *Store) Channels() repository.ChannelRepository           { return &channelStore{s} }
func (s *Store) Catalog() repository.CatalogRepository            { return &catalogStore{s} }
func (s *Store) Subscriptions() repository.SubscriptionRepository { return &subscriptionStore{s} }
func (s *Store) GiftCards() repository.GiftCardRepository         { return &giftCardStore{s} }
func (s *Store) ApiKeys() repository.ApiKeyRepository             { return &apiKeyStore{s} }

// --- users ---

type userStore struct{ s *Store }

func (r *userStore) GetByID(_ context.Context, id int64) (*models.User, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.doc.Users {
		if r.s.doc.Users[i].ID == id {
			user := r.s.doc.Users[i]
			return &user, true, nil
		}
	}
	return nil, false, nil
}

func (r *userStore) GetByEmail(_ context.Context, email string) (*models.User, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.doc.Users {
		if r.s.doc.Users[i].Email == email {
			user := r.s.doc.Users[i]
			return &user, true, nil
		}
	}
	return nil, false, nil
}

func (r *userStore) List(_ context.Context) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := make([]*models.User, 0, len(r.s.doc.Users))
	for i := range r.s.doc.Users {
		user := r.s.doc.Users[i]
		users = append(users, &user)
	}
	return users, nil
}

func (r *userStore) Create(_ context.Context, user *models.User) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.nextID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.s.doc.Users = append(r.s.doc.Users, *user)
	return user.ID, r.s.save()
}

func (r *userStore) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.Users {
		if r.s.doc.Users[i].ID == user.ID {
			user.UpdatedAt = time.Now()
			r.s.doc.Users[i] = *user
			return r.s.save()
		}
	}
	return nil
}

func (r *userStore) AddCredits(_ context.Context, id int64, delta float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.Users {
		if r.s.doc.Users[i].ID == id {
			r.s.doc.Users[i].Credits += delta
			r.s.doc.Users[i].UpdatedAt = time.Now()
			return r.s.save()
		}
	}
	return nil
}

func (r *userStore) Remove(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.Users {
		if r.s.doc.Users[i].ID == id {
			r.s.doc.Users = append(r.s.doc.Users[:i], r.s.doc.Users[i+1:]...)
			return r.s.save()
		}
	}
	return nil
}

// --- channels ---

type channelStore struct{ s *Store }

func (r *channelStore) GetByID(_ context.Context, id int64) (*models.Channel, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.doc.Channels {
		if r.s.doc.Channels[i].ID == id {
			channel := r.s.doc.Channels[i]
			return &channel, true, nil
		}
	}
	return nil, false, nil
}

func (r *channelStore) List(_ context.Context) ([]*models.Channel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	channels := make([]*models.Channel, 0, len(r.s.doc.Channels))
	for i := range r.s.doc.Channels {
		channel := r.s.doc.Channels[i]
		channels = append(channels, &channel)
	}
	return channels, nil
}

func (r *channelStore) Create(_ context.Context, channel *models.Channel) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	channel.ID = r.s.nextID()
	channel.CreatedAt = time.Now()
	channel.UpdatedAt = channel.CreatedAt
	r.s.doc.Channels = append(r.s.doc.Channels, *channel)
	return channel.ID, r.s.save()
}

func (r *channelStore) Update(_ context.Context, channel *models.Channel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.Channels {
		if r.s.doc.Channels[i].ID == channel.ID {
			channel.UpdatedAt = time.Now()
			r.s.doc.Channels[i] = *channel
			return r.s.save()
		}
	}
	return nil
}

func (r *channelStore) Remove(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.Channels {
		if r.s.doc.Channels[i].ID == id {
			r.s.doc.Channels = append(r.s.doc.Channels[:i], r.s.doc.Channels[i+1:]...)
			return r.s.save()
		}
	}
	return nil
}

// --- catalog ---

type catalogStore struct{ s *Store }

func (r *catalogStore) GetByID(_ context.Context, id int64) (*models.CatalogItem, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.doc.CatalogItems {
		if r.s.doc.CatalogItems[i].ID == id {
			item := r.s.doc.CatalogItems[i]
			return &item, true, nil
		}
	}
	return nil, false, nil
}

func (r *catalogStore) List(_ context.Context) ([]*models.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*models.CatalogItem, 0, len(r.s.doc.CatalogItems))
	for i := range r.s.doc.CatalogItems {
		item := r.s.doc.CatalogItems[i]
		items = append(items, &item)
	}
	return items, nil
}

func (r *catalogStore) Create(_ context.Context, item *models.CatalogItem) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.nextID()
	item.CreatedAt = time.Now()
	r.s.doc.CatalogItems = append(r.s.doc.CatalogItems, *item)
	return item.ID, r.s.save()
}

func (r *catalogStore) Update(_ context.Context, item *models.CatalogItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.CatalogItems {
		if r.s.doc.CatalogItems[i].ID == item.ID {
			r.s.doc.CatalogItems[i] = *item
			return r.s.save()
		}
	}
	return nil
}

func (r *catalogStore) Remove(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.CatalogItems {
		if r.s.doc.CatalogItems[i].ID == id {
			r.s.doc.CatalogItems = append(r.s.doc.CatalogItems[:i], r.s.doc.CatalogItems[i+1:]...)
			return r.s.save()
		}
	}
	return nil
}

// --- subscriptions ---

type subscriptionStore struct{ s *Store }

func (r *subscriptionStore) GetByID(_ context.Context, id int64) (*models.Subscription, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.doc.Subscriptions {
		if r.s.doc.Subscriptions[i].ID == id {
			sub := r.s.doc.Subscriptions[i]
			return &sub, true, nil
		}
	}
	return nil, false, nil
}

func (r *subscriptionStore) GetByCode(_ context.Context, code string) (*models.Subscription, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.doc.Subscriptions {
		if r.s.doc.Subscriptions[i].Code == code {
			sub := r.s.doc.Subscriptions[i]
			return &sub, true, nil
		}
	}
	return nil, false, nil
}

func (r *subscriptionStore) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, found, err := r.GetByCode(ctx, code)
	return found, err
}

func (r *subscriptionStore) List(_ context.Context) ([]*models.Subscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	subs := make([]*models.Subscription, 0, len(r.s.doc.Subscriptions))
	for i := range r.s.doc.Subscriptions {
		sub := r.s.doc.Subscriptions[i]
		subs = append(subs, &sub)
	}
	return subs, nil
}

func (r *subscriptionStore) ListByChannel(_ context.Context, channelID int64) ([]*models.Subscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var subs []*models.Subscription
	for i := range r.s.doc.Subscriptions {
		if r.s.doc.Subscriptions[i].ChannelID == channelID {
			sub := r.s.doc.Subscriptions[i]
			subs = append(subs, &sub)
		}
	}
	return subs, nil
}

func (r *subscriptionStore) Create(_ context.Context, sub *models.Subscription) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub.ID = r.s.nextID()
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	stored := *sub
	stored.User = nil
	stored.Channel = nil
	r.s.doc.Subscriptions = append(r.s.doc.Subscriptions, stored)
	return sub.ID, r.s.save()
}

func (r *subscriptionStore) Update(_ context.Context, sub *models.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.Subscriptions {
		if r.s.doc.Subscriptions[i].ID == sub.ID {
			sub.UpdatedAt = time.Now()
			stored := *sub
			stored.User = nil
			stored.Channel = nil
			r.s.doc.Subscriptions[i] = stored
			return r.s.save()
		}
	}
	return nil
}

func (r *subscriptionStore) Remove(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.Subscriptions {
		if r.s.doc.Subscriptions[i].ID == id {
			r.s.doc.Subscriptions = append(r.s.doc.Subscriptions[:i], r.s.doc.Subscriptions[i+1:]...)
			return r.s.save()
		}
	}
	return nil
}

// --- gift cards ---

type giftCardStore struct{ s *Store }

func (r *giftCardStore) GetByID(_ context.Context, id int64) (*models.GiftCard, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.doc.GiftCards {
		if r.s.doc.GiftCards[i].ID == id {
			card := r.s.doc.GiftCards[i]
			return &card, true, nil
		}
	}
	return nil, false, nil
}

func (r *giftCardStore) GetByCode(_ context.Context, code string) (*models.GiftCard, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.doc.GiftCards {
		if r.s.doc.GiftCards[i].Code == code {
			card := r.s.doc.GiftCards[i]
			return &card, true, nil
		}
	}
	return nil, false, nil
}

func (r *giftCardStore) List(_ context.Context) ([]*models.GiftCard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	cards := make([]*models.GiftCard, 0, len(r.s.doc.GiftCards))
	for i := range r.s.doc.GiftCards {
		card := r.s.doc.GiftCards[i]
		cards = append(cards, &card)
	}
	return cards, nil
}

func (r *giftCardStore) ListExpired(_ context.Context, now time.Time) ([]*models.GiftCard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var cards []*models.GiftCard
	for i := range r.s.doc.GiftCards {
		if r.s.doc.GiftCards[i].Status == models.GiftCardStatusAvailable && r.s.doc.GiftCards[i].ExpiresAt.Before(now) {
			card := r.s.doc.GiftCards[i]
			cards = append(cards, &card)
		}
	}
	return cards, nil
}

func (r *giftCardStore) Create(_ context.Context, card *models.GiftCard) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	card.ID = r.s.nextID()
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt
	r.s.doc.GiftCards = append(r.s.doc.GiftCards, *card)
	return card.ID, r.s.save()
}

func (r *giftCardStore) Update(_ context.Context, card *models.GiftCard) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.GiftCards {
		if r.s.doc.GiftCards[i].ID == card.ID {
			card.UpdatedAt = time.Now()
			r.s.doc.GiftCards[i] = *card
			return r.s.save()
		}
	}
	return nil
}

func (r *giftCardStore) Remove(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.GiftCards {
		if r.s.doc.GiftCards[i].ID == id {
			r.s.doc.GiftCards = append(r.s.doc.GiftCards[:i], r.s.doc.GiftCards[i+1:]...)
			return r.s.save()
		}
	}
	return nil
}

// --- api keys ---

type apiKeyStore struct{ s *Store }

func (r *apiKeyStore) GetByKey(_ context.Context, apiKey string) (*int64, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.doc.ApiKeys {
		if r.s.doc.ApiKeys[i].ApiKey == apiKey {
			userID := r.s.doc.ApiKeys[i].UserID
			return &userID, true, nil
		}
	}
	return nil, false, nil
}

func (r *apiKeyStore) GetByUserID(_ context.Context, userID int64) ([]*models.ApiKey, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var keys []*models.ApiKey
	for i := range r.s.doc.ApiKeys {
		if r.s.doc.ApiKeys[i].UserID == userID {
			key := r.s.doc.ApiKeys[i]
			keys = append(keys, &key)
		}
	}
	return keys, nil
}

func (r *apiKeyStore) Create(_ context.Context, apiKey *models.ApiKey) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	apiKey.ID = r.s.nextID()
	apiKey.CreatedAt = time.Now()
	r.s.doc.ApiKeys = append(r.s.doc.ApiKeys, *apiKey)
	return apiKey.ID, r.s.save()
}

func (r *apiKeyStore) CheckByUserID(_ context.Context, keyID, userID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.doc.ApiKeys {
		if r.s.doc.ApiKeys[i].ID == keyID && r.s.doc.ApiKeys[i].UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *apiKeyStore) Remove(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.doc.ApiKeys {
		if r.s.doc.ApiKeys[i].ID == id {
			r.s.doc.ApiKeys = append(r.s.doc.ApiKeys[:i], r.s.doc.ApiKeys[i+1:]...)
			return r.s.save()
		}
	}
	return nil
}
