// Package domain defines the persistence models of the dealer network:
// partners (dealers and influencers stored in the shared "users" collection),
// orders and fulfillments per sales channel, the rewards catalog with its
// redemption history, and the daily price feed. These types are plain data
// carriers; persistence mapping to and from document-store fields lives in
// the repo package.
package domain

import "time"

// Role discriminates partner records within the shared "users" collection.
type Role string

const (
	// RoleDealer marks a direct dealer account.
	RoleDealer Role = "dealer"
	// RoleInfluencer marks a sub-dealer (influencer) account.
	RoleInfluencer Role = "influencer"
)

// Valid reports whether r is a known partner role.
func (r Role) Valid() bool { return r == RoleDealer || r == RoleInfluencer }

// Status is the lifecycle state of a partner, reward, or redemption record.
// New records always start as StatusPending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusActive || s == StatusInactive
}

// Channel selects which order book a request targets. Each channel has its
// own orders and fulfillments collections.
type Channel string

const (
	ChannelInfluencer  Channel = "influencer"
	ChannelDistributor Channel = "distributor"
)

// Valid reports whether c is a known sales channel.
func (c Channel) Valid() bool {
	return c == ChannelInfluencer || c == ChannelDistributor
}

// OrderStatus is the fulfillment lifecycle of an order. The values are
// display strings and are stored verbatim.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderInProgress OrderStatus = "In Progress"
	OrderCompleted  OrderStatus = "Completed"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	return s == OrderPending || s == OrderInProgress || s == OrderCompleted
}

// Partner is a dealer or influencer account. The ID is assigned by the
// document store on creation and never changes afterwards. Attachment
// fields hold resolved storage URLs; inline payloads never reach a
// persisted Partner.
type Partner struct {
	ID             string    `json:"id"`
	Role           Role      `json:"role"`
	Status         Status    `json:"status"`
	Name           string    `json:"name"`
	FirmName       string    `json:"firmName,omitempty"`
	Email          string    `json:"email,omitempty"`
	PhoneNumber    string    `json:"phoneNumber"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	Pincode        string    `json:"pincode,omitempty"`
	GSTNumber      string    `json:"gstNumber,omitempty"`
	PANNumber      string    `json:"panNumber,omitempty"`
	AadhaarNumber  string    `json:"aadhaarNumber,omitempty"`
	LogoURL        string    `json:"logoUrl,omitempty"`
	GSTDocURL      string    `json:"gstDocUrl,omitempty"`
	PANCardURL     string    `json:"panCardUrl,omitempty"`
	AadhaarCardURL string    `json:"aadhaarCardUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PartnerInput carries the fields accepted when creating a partner.
// Attachments may be empty, inline (pending upload), or already-stored
// references; the repository resolves them before the document write.
type PartnerInput struct {
	Name          string     `json:"name"`
	FirmName      string     `json:"firmName"`
	Email         string     `json:"email"`
	PhoneNumber   string     `json:"phoneNumber"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	Pincode       string     `json:"pincode"`
	GSTNumber     string     `json:"gstNumber"`
	PANNumber     string     `json:"panNumber"`
	AadhaarNumber string     `json:"aadhaarNumber"`
	Logo          Attachment `json:"logo"`
	GSTDoc        Attachment `json:"gstDoc"`
	PANCard       Attachment `json:"panCard"`
	AadhaarCard   Attachment `json:"aadhaarCard"`
}

// PartnerUpdate is a partial update: nil fields are left untouched in the
// store. Attachment pointers follow the same rule; a present attachment is
// re-resolved only when it is not already a stored reference.
type PartnerUpdate struct {
	Name          *string     `json:"name"`
	FirmName      *string     `json:"firmName"`
	Email         *string     `json:"email"`
	PhoneNumber   *string     `json:"phoneNumber"`
	Address       *string     `json:"address"`
	City          *string     `json:"city"`
	State         *string     `json:"state"`
	Pincode       *string     `json:"pincode"`
	GSTNumber     *string     `json:"gstNumber"`
	PANNumber     *string     `json:"panNumber"`
	AadhaarNumber *string     `json:"aadhaarNumber"`
	Status        *Status     `json:"status"`
	Logo          *Attachment `json:"logo"`
	GSTDoc        *Attachment `json:"gstDoc"`
	PANCard       *Attachment `json:"panCard"`
	AadhaarCard   *Attachment `json:"aadhaarCard"`
}

// Order is a purchase order placed by a partner. Orders have a lifecycle
// independent of the partner record that placed them.
type Order struct {
	ID        string      `json:"id"`
	PartnerID string      `json:"partnerId"`
	Quantity  int         `json:"quantity"`
	Rate      float64     `json:"rate"`
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// OrderInput carries the fields accepted when placing an order.
type OrderInput struct {
	PartnerID string  `json:"partnerId"`
	Quantity  int     `json:"quantity"`
	Rate      float64 `json:"rate"`
	Note      string  `json:"note"`
}

// OrderUpdate is a partial order update: nil fields are left untouched.
type OrderUpdate struct {
	Quantity *int         `json:"quantity"`
	Rate     *float64     `json:"rate"`
	Status   *OrderStatus `json:"status"`
	Note     *string      `json:"note"`
}

// Fulfillment records a (possibly partial) delivery against an order.
type Fulfillment struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FulfillmentInput carries the fields accepted when recording a fulfillment.
type FulfillmentInput struct {
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

// Reward is a catalog entry partners can redeem points against.
type Reward struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Points    int       `json:"points"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// RewardInput carries the fields accepted when creating a catalog entry.
type RewardInput struct {
	Name   string     `json:"name"`
	Points int        `json:"points"`
	Image  Attachment `json:"image"`
	Active bool       `json:"active"`
}

// RewardUpdate is a partial catalog update: nil fields are left untouched.
type RewardUpdate struct {
	Name   *string     `json:"name"`
	Points *int        `json:"points"`
	Active *bool       `json:"active"`
	Image  *Attachment `json:"image"`
}

// RedemptionInput carries the fields accepted when recording a redemption.
// Reward name and points are copied from the catalog entry at write time.
type RedemptionInput struct {
	PartnerID string `json:"partnerId"`
	RewardID  string `json:"rewardId"`
}

// Redemption is one rewards_history entry: a partner cashing points in for
// a reward. RewardName and Points are denormalized at redemption time so
// history survives catalog edits.
type Redemption struct {
	ID         string    `json:"id"`
	PartnerID  string    `json:"partnerId"`
	RewardID   string    `json:"rewardId"`
	RewardName string    `json:"rewardName"`
	Points     int       `json:"points"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Admin is a staff account allowed to sign in to the dashboard. Password
// hashes are bcrypt and never leave the service layer.
type Admin struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}

// Rate is one entry of the append-only daily_price feed. Entries are
// immutable once written; the dashboard only ever reads the most recent one.
type Rate struct {
	ID        string    `json:"id"`
	NewPrice  float64   `json:"newPrice"`
	OldPrice  float64   `json:"oldPrice,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
