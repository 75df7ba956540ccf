package expense

import (
	"time"

	"github.com/mazzel/portal/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RecordType represents the kind of masrafçı record
type RecordType string

const (
	RecordTypeHarcama    RecordType = "harcama"    // one-off spending
	RecordTypeFatura     RecordType = "fatura"     // recurring bill
	RecordTypeKrediKarti RecordType = "kredikarti" // credit card / instalment
	RecordTypeAlacakli   RecordType = "alacakli"   // money owed to the user
)

// IsValid checks if the type is a valid RecordType
func (t RecordType) IsValid() bool {
	switch t {
	case RecordTypeHarcama, RecordTypeFatura, RecordTypeKrediKarti, RecordTypeAlacakli:
		return true
	}
	return false
}

// String returns the string representation of RecordType
func (t RecordType) String() string {
	return string(t)
}

// PaymentState represents whether a record has been paid ("durum")
type PaymentState string

const (
	PaymentStateUnpaid PaymentState = "odenmedi"
	PaymentStatePaid   PaymentState = "odendi"
)

// Record represents a single masrafçı entry: a spending, a bill, a credit
// card instalment or a creditor note. Field names follow the portal's
// Turkish vocabulary because they are part of the stored data contract.
type Record struct {
	shared.BaseEntity
	User          string          `json:"user"`
	Type          RecordType      `json:"type"`
	Ad            string          `json:"ad"`
	Tutar         decimal.Decimal `json:"tutar"`
	Ay            string          `json:"ay"`    // YYYY-MM
	Tarih         string          `json:"tarih"` // YYYY-MM-DD
	Kategori      string          `json:"kategori"`
	Kurum         string          `json:"kurum"`
	OdemeYontemi  string          `json:"odeme_yontemi"`
	SonOdeme      string          `json:"son_odeme"`
	Durum         PaymentState    `json:"durum"`
	TaksitSayisi  int             `json:"taksit_sayisi"`
	TaksitOdenen  int             `json:"taksit_odenen"`
	AylikTutar    decimal.Decimal `json:"aylik_tutar"`
	Kart          string          `json:"kart"`
	OtomatikOdeme bool            `json:"otomatik_odeme"`
	Telefon       string          `json:"telefon"`
	IBAN          string          `json:"iban"`
	Notlar        string          `json:"notlar"`
	AboneNo       string          `json:"abone_no"`
}

// NewRecord creates a new record after validating the required fields
func NewRecord(user string, recordType RecordType, ad string) (*Record, error) {
	if user == "" {
		return nil, shared.NewDomainError("INVALID_USER", "Record owner cannot be empty")
	}
	if ad == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "ad alanı zorunludur")
	}
	if !recordType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Geçersiz kayıt tipi")
	}

	return &Record{
		BaseEntity: shared.NewBaseEntity(),
		User:       user,
		Type:       recordType,
		Ad:         ad,
		Durum:      PaymentStateUnpaid,
	}, nil
}

// IsBill returns true for bill-type records, the ones the reminder engine
// matches against
func (r *Record) IsBill() bool {
	return r.Type == RecordTypeFatura
}

// IsPaid returns true if the record has been settled
func (r *Record) IsPaid() bool {
	return r.Durum == PaymentStatePaid
}

// MarkPaid marks the record as settled
func (r *Record) MarkPaid() {
	r.Durum = PaymentStatePaid
	r.UpdatedAt = time.Now()
}
