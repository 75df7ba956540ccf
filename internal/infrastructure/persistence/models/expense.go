package models

import (
	"github.com/shopspring/decimal"

	"github.com/mazzel/portal/internal/domain/expense"
)

// RecordModel is the persistence model for masrafçı records. Column names
// follow the original sqlite schema.
type RecordModel struct {
	BaseModel
	User          string               `gorm:"type:varchar(100);not null;index:idx_records_user_ay,priority:1"`
	Type          expense.RecordType   `gorm:"type:varchar(20);not null;index"`
	Ad            string               `gorm:"type:varchar(200);not null"`
	Tutar         decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Ay            string               `gorm:"type:varchar(7);index:idx_records_user_ay,priority:2"`
	Tarih         string               `gorm:"type:varchar(10)"`
	Kategori      string               `gorm:"type:varchar(100)"`
	Kurum         string               `gorm:"type:varchar(200)"`
	OdemeYontemi  string               `gorm:"type:varchar(50);column:odeme_yontemi"`
	SonOdeme      string               `gorm:"type:varchar(10);column:son_odeme"`
	Durum         expense.PaymentState `gorm:"type:varchar(20);not null;default:'odenmedi'"`
	TaksitSayisi  int                  `gorm:"not null;default:0;column:taksit_sayisi"`
	TaksitOdenen  int                  `gorm:"not null;default:0;column:taksit_odenen"`
	AylikTutar    decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0;column:aylik_tutar"`
	Kart          string               `gorm:"type:varchar(100)"`
	OtomatikOdeme bool                 `gorm:"not null;default:false;column:otomatik_odeme"`
	Telefon       string               `gorm:"type:varchar(30)"`
	IBAN          string               `gorm:"type:varchar(40);column:iban"`
	Notlar        string               `gorm:"type:text"`
	AboneNo       string               `gorm:"type:varchar(50);column:abone_no"`
}

// TableName returns the table name for GORM
func (RecordModel) TableName() string {
	return "records"
}

// ToDomain converts the persistence model to a domain Record
func (m *RecordModel) ToDomain() *expense.Record {
	return &expense.Record{
		BaseEntity:    m.BaseModel.ToDomain(),
		User:          m.User,
		Type:          m.Type,
		Ad:            m.Ad,
		Tutar:         m.Tutar,
		Ay:            m.Ay,
		Tarih:         m.Tarih,
		Kategori:      m.Kategori,
		Kurum:         m.Kurum,
		OdemeYontemi:  m.OdemeYontemi,
		SonOdeme:      m.SonOdeme,
		Durum:         m.Durum,
		TaksitSayisi:  m.TaksitSayisi,
		TaksitOdenen:  m.TaksitOdenen,
		AylikTutar:    m.AylikTutar,
		Kart:          m.Kart,
		OtomatikOdeme: m.OtomatikOdeme,
		Telefon:       m.Telefon,
		IBAN:          m.IBAN,
		Notlar:        m.Notlar,
		AboneNo:       m.AboneNo,
	}
}

// FromDomain populates the persistence model from a domain Record
func (m *RecordModel) FromDomain(r *expense.Record) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.User = r.User
	m.Type = r.Type
	m.Ad = r.Ad
	m.Tutar = r.Tutar
	m.Ay = r.Ay
	m.Tarih = r.Tarih
	m.Kategori = r.Kategori
	m.Kurum = r.Kurum
	m.OdemeYontemi = r.OdemeYontemi
	m.SonOdeme = r.SonOdeme
	m.Durum = r.Durum
	m.TaksitSayisi = r.TaksitSayisi
	m.TaksitOdenen = r.TaksitOdenen
	m.AylikTutar = r.AylikTutar
	m.Kart = r.Kart
	m.OtomatikOdeme = r.OtomatikOdeme
	m.Telefon = r.Telefon
	m.IBAN = r.IBAN
	m.Notlar = r.Notlar
	m.AboneNo = r.AboneNo
}

// RecordModelFromDomain creates a new persistence model from a domain Record
func RecordModelFromDomain(r *expense.Record) *RecordModel {
	m := &RecordModel{}
	m.FromDomain(r)
	return m
}
