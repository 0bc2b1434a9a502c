package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/storage"
)

// BillerInput holds the editable fields of a biller.
type BillerInput struct {
	Name     string
	Category models.Category
	Account  string
	Notes    string
}

func (in BillerInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", "is required")
	}
	if !in.Category.Valid() {
		return invalid("category", "unknown category "+string(in.Category))
	}
	return nil
}

// AddBiller creates a biller for owner.
func (l *Ledger) AddBiller(ctx context.Context, owner string, in BillerInput) (*models.Biller, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	biller := &models.Biller{
		OwnerID:  owner,
		Name:     strings.TrimSpace(in.Name),
		Category: in.Category,
		Account:  in.Account,
		Notes:    in.Notes,
	}
	err := l.write(ctx, "add biller", func(tx storage.Tx) error {
		return tx.CreateBiller(ctx, biller)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Biller added", "owner_id", owner, "biller_id", biller.ID)
	return biller, nil
}

// ListBillers returns owner's billers ordered by name.
func (l *Ledger) ListBillers(ctx context.Context, owner string) ([]models.Biller, error) {
	billers, err := l.store.ListBillers(ctx, owner)
	if err != nil {
		return nil, l.translate("list billers", err)
	}
	return billers, nil
}

// UpdateBiller overwrites a biller's editable fields.
func (l *Ledger) UpdateBiller(ctx context.Context, owner, id string, in BillerInput) (*models.Biller, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var biller *models.Biller
	err := l.write(ctx, "update biller", func(tx storage.Tx) error {
		existing, err := tx.GetBiller(ctx, owner, id)
		if err != nil {
			return err
		}
		existing.Name = strings.TrimSpace(in.Name)
		existing.Category = in.Category
		existing.Account = in.Account
		existing.Notes = in.Notes
		if err := tx.UpdateBiller(ctx, existing); err != nil {
			return err
		}
		biller = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Biller updated", "owner_id", owner, "biller_id", id, "name", biller.Name)
	return biller, nil
}

// DeleteBiller removes a biller with all its bills and their payments.
// Payment history is kept.
func (l *Ledger) DeleteBiller(ctx context.Context, owner, id string) error {
	err := l.write(ctx, "delete biller", func(tx storage.Tx) error {
		return tx.DeleteBiller(ctx, owner, id)
	})
	if err != nil {
		return err
	}
	slog.Info("Biller deleted", "owner_id", owner, "biller_id", id)
	return nil
}
