package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lewin99/BuddyGet/internal/models"
	"github.com/Lewin99/BuddyGet/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountStore keeps each user's linked aggregator credential, encrypted
// with the configured key.
type AccountStore struct {
	db         *gorm.DB
	encryptKey string
}

func NewAccountStore(db *gorm.DB, encryptKey string) *AccountStore {
	return &AccountStore{db: db, encryptKey: encryptKey}
}

// Link stores (or replaces) the owner's aggregator credential.
func (s *AccountStore) Link(ctx context.Context, ownerID uint, itemID, accessToken string) error {
	if accessToken == "" {
		return util.Invalid("access_token", "is required")
	}
	enc, err := util.EncryptString(s.encryptKey, accessToken)
	if err != nil {
		return fmt.Errorf("encrypt access token: %w", err)
	}

	acct := models.UserAccount{
		UserID:         ownerID,
		ItemID:         itemID,
		AccessTokenEnc: enc,
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"item_id":          itemID,
				"access_token_enc": enc,
				"updated_at":       time.Now().UTC(),
			}),
		}).
		Create(&acct).Error; err != nil {
		return fmt.Errorf("link account for user %d: %w", ownerID, err)
	}
	return nil
}

// AccessToken returns the owner's decrypted credential or ErrNotFound when
// no account is linked.
func (s *AccountStore) AccessToken(ctx context.Context, ownerID uint) (string, error) {
	var acct models.UserAccount
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("linked account for user %d: %w", ownerID, util.ErrNotFound)
		}
		return "", fmt.Errorf("query linked account: %w", err)
	}
	token, err := util.DecryptString(s.encryptKey, acct.AccessTokenEnc)
	if err != nil {
		return "", fmt.Errorf("decrypt access token: %w", err)
	}
	return token, nil
}
