package masrafci

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mazzel/portal/internal/domain/expense"
	"github.com/mazzel/portal/internal/domain/shared"
)

// RecordService provides application-level masrafçı record operations
type RecordService struct {
	recordRepo expense.RecordRepository
	txScope    TransactionScope
	clock      Clock
}

// NewRecordService creates a new RecordService
func NewRecordService(recordRepo expense.RecordRepository, txScope TransactionScope, clock Clock) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		txScope:    txScope,
		clock:      clock,
	}
}

// RecordResponse represents a masrafçı record in API responses. JSON keys
// follow the portal's stored Turkish vocabulary.
type RecordResponse struct {
	ID            uint            `json:"id"`
	User          string          `json:"user"`
	Type          string          `json:"type"`
	Ad            string          `json:"ad"`
	Tutar         decimal.Decimal `json:"tutar"`
	Ay            string          `json:"ay"`
	Tarih         string          `json:"tarih"`
	Kategori      string          `json:"kategori"`
	Kurum         string          `json:"kurum"`
	OdemeYontemi  string          `json:"odeme_yontemi"`
	SonOdeme      string          `json:"son_odeme"`
	Durum         string          `json:"durum"`
	TaksitSayisi  int             `json:"taksit_sayisi"`
	TaksitOdenen  int             `json:"taksit_odenen"`
	AylikTutar    decimal.Decimal `json:"aylik_tutar"`
	Kart          string          `json:"kart"`
	OtomatikOdeme bool            `json:"otomatik_odeme"`
	Telefon       string          `json:"telefon"`
	IBAN          string          `json:"iban"`
	Notlar        string          `json:"notlar"`
	AboneNo       string          `json:"abone_no"`
	CreatedAt     string          `json:"created_at"`
}

// CreateRecordRequest represents a request to create a masrafçı record
type CreateRecordRequest struct {
	Type          string          `json:"type" binding:"required"`
	Ad            string          `json:"ad" binding:"required"`
	Tutar         decimal.Decimal `json:"tutar"`
	Ay            string          `json:"ay" binding:"omitempty,month"`
	Tarih         string          `json:"tarih" binding:"omitempty,isodate"`
	Kategori      string          `json:"kategori"`
	Kurum         string          `json:"kurum"`
	OdemeYontemi  string          `json:"odeme_yontemi"`
	SonOdeme      string          `json:"son_odeme" binding:"omitempty,isodate"`
	Durum         string          `json:"durum" binding:"omitempty,oneof=odenmedi odendi"`
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

// ListRecordsRequest carries the optional record list filters
type ListRecordsRequest struct {
	Type  string `form:"type"`
	Month string `form:"month" binding:"omitempty,month"`
}

// SummaryResponse aggregates a user's records for the dashboard
type SummaryResponse struct {
	ToplamGider       decimal.Decimal  `json:"toplam_gider"`
	KategoriDagilimi  []CategoryShare  `json:"kategori_dagilimi"`
	YaklasanFaturalar []RecordResponse `json:"yaklasan_faturalar"`
	AktifTaksitler    []RecordResponse `json:"aktif_taksitler"`
	SonIslemler       []RecordResponse `json:"son_islemler"`
	PendingReminders  int64            `json:"pending_reminders"`
}

// CategoryShare is one slice of the category breakdown. Records without a
// category are reported under "Belirtilmemiş".
type CategoryShare struct {
	Kategori string          `json:"kategori"`
	Toplam   decimal.Decimal `json:"toplam"`
	Adet     int64           `json:"adet"`
}

// ListRecords returns the user's records, optionally filtered by type and
// month, newest first
func (s *RecordService) ListRecords(ctx context.Context, user string, req ListRecordsRequest) ([]RecordResponse, error) {
	records, err := s.recordRepo.FindAllForUser(ctx, user, expense.RecordFilter{
		Type:  expense.RecordType(req.Type),
		Month: req.Month,
	})
	if err != nil {
		return nil, err
	}
	return toRecordResponses(records), nil
}

// CreateRecord validates and stores a new record for the user, returning
// the assigned ID
func (s *RecordService) CreateRecord(ctx context.Context, user string, req CreateRecordRequest) (uint, error) {
	record, err := expense.NewRecord(user, expense.RecordType(req.Type), req.Ad)
	if err != nil {
		return 0, err
	}

	record.Tutar = req.Tutar
	record.Ay = req.Ay
	record.Tarih = req.Tarih
	record.Kategori = req.Kategori
	record.Kurum = req.Kurum
	record.OdemeYontemi = req.OdemeYontemi
	record.SonOdeme = req.SonOdeme
	if req.Durum != "" {
		record.Durum = expense.PaymentState(req.Durum)
	}
	record.TaksitSayisi = req.TaksitSayisi
	record.TaksitOdenen = req.TaksitOdenen
	record.AylikTutar = req.AylikTutar
	record.Kart = req.Kart
	record.OtomatikOdeme = req.OtomatikOdeme
	record.Telefon = req.Telefon
	record.IBAN = req.IBAN
	record.Notlar = req.Notlar
	record.AboneNo = req.AboneNo

	if err := s.recordRepo.Save(ctx, record); err != nil {
		return 0, err
	}
	return record.ID, nil
}

// DeleteRecord removes the record if it belongs to the user. Any reminder
// event linked to it has its reference cleared in the same transaction.
func (s *RecordService) DeleteRecord(ctx context.Context, user string, recordID uint) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.RecordRepo().FindByID(ctx, recordID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Kayıt bulunamadı")
			}
			return err
		}
		if record.User != user {
			return shared.NewDomainError("FORBIDDEN", "Yetkiniz yok")
		}
		if err := repos.EventRepo().UnlinkRecord(ctx, recordID); err != nil {
			return err
		}
		return repos.RecordRepo().Delete(ctx, recordID)
	})
}

// Summary builds the dashboard aggregation for the user. An empty month
// spans all records; the pending reminder count always falls back to the
// current month.
func (s *RecordService) Summary(ctx context.Context, user, month string) (*SummaryResponse, error) {
	summary := &SummaryResponse{
		KategoriDagilimi:  []CategoryShare{},
		YaklasanFaturalar: []RecordResponse{},
		AktifTaksitler:    []RecordResponse{},
		SonIslemler:       []RecordResponse{},
	}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		total, err := repos.RecordRepo().SumForUser(ctx, user, month)
		if err != nil {
			return err
		}
		summary.ToplamGider = total

		categories, err := repos.RecordRepo().SumByCategory(ctx, user, month)
		if err != nil {
			return err
		}
		for _, c := range categories {
			name := c.Kategori
			if name == "" {
				name = "Belirtilmemiş"
			}
			summary.KategoriDagilimi = append(summary.KategoriDagilimi, CategoryShare{
				Kategori: name,
				Toplam:   c.Toplam,
				Adet:     c.Adet,
			})
		}

		bills, err := repos.RecordRepo().FindUnpaidBills(ctx, user, month, 5)
		if err != nil {
			return err
		}
		summary.YaklasanFaturalar = toRecordResponses(bills)

		instalments, err := repos.RecordRepo().FindActiveInstalments(ctx, user, month, 5)
		if err != nil {
			return err
		}
		summary.AktifTaksitler = toRecordResponses(instalments)

		recent, err := repos.RecordRepo().FindRecent(ctx, user, month, 10)
		if err != nil {
			return err
		}
		summary.SonIslemler = toRecordResponses(recent)

		reminderMonth := month
		if reminderMonth == "" {
			reminderMonth = s.clock.Now().Format("2006-01")
		}
		pending, err := repos.EventRepo().CountPending(ctx, user, reminderMonth)
		if err != nil {
			return err
		}
		summary.PendingReminders = pending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func toRecordResponse(record *expense.Record) RecordResponse {
	return RecordResponse{
		ID:            record.ID,
		User:          record.User,
		Type:          record.Type.String(),
		Ad:            record.Ad,
		Tutar:         record.Tutar,
		Ay:            record.Ay,
		Tarih:         record.Tarih,
		Kategori:      record.Kategori,
		Kurum:         record.Kurum,
		OdemeYontemi:  record.OdemeYontemi,
		SonOdeme:      record.SonOdeme,
		Durum:         string(record.Durum),
		TaksitSayisi:  record.TaksitSayisi,
		TaksitOdenen:  record.TaksitOdenen,
		AylikTutar:    record.AylikTutar,
		Kart:          record.Kart,
		OtomatikOdeme: record.OtomatikOdeme,
		Telefon:       record.Telefon,
		IBAN:          record.IBAN,
		Notlar:        record.Notlar,
		AboneNo:       record.AboneNo,
		CreatedAt:     record.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toRecordResponses(records []expense.Record) []RecordResponse {
	result := make([]RecordResponse, 0, len(records))
	for i := range records {
		result = append(result, toRecordResponse(&records[i]))
	}
	return result
}
