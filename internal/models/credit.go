package models

import (
	"time"

	"github.com/google/uuid"
)

type CreditPackage struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CreditAmount int       `json:"credit_amount"`
	Price        int64     `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreditPurchase is immutable once written.
type CreditPurchase struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	CreditPackageID  *uuid.UUID `json:"credit_package_id"`
	PurchasedCredits int        `json:"purchased_credits"`
	PricePaid        int64      `json:"price_paid"`
	PurchaseAt       time.Time  `json:"purchase_at"`
}

type PurchasedPackage struct {
	Name             string    `json:"name"`
	PurchasedCredits int       `json:"purchased_credits"`
	PricePaid        int64     `json:"price_paid"`
	PurchaseAt       time.Time `json:"purchase_at"`
}

// CreditBalance is derived from purchases and active bookings, never stored.
type CreditBalance struct {
	Purchased int `json:"purchased"`
	Used      int `json:"used"`
}

func (b CreditBalance) Remaining() int {
	return b.Purchased - b.Used
}
