package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/receipt"
)

// ReceiptService renders receipts for recorded sales. Rendering stamps
// the sale's print metadata, the only mutation a recorded sale allows.
type ReceiptService struct {
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(saleRepo repository.SaleRepository, settingsRepo repository.SettingsRepository) *ReceiptService {
	return &ReceiptService{
		saleRepo:     saleRepo,
		settingsRepo: settingsRepo,
	}
}

// RenderReceipt renders the sale's receipt in the requested format and
// returns the body with its content type. Format defaults to html.
func (s *ReceiptService) RenderReceipt(ctx context.Context, saleID uuid.UUID, format string) ([]byte, string, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	if sale == nil {
		return nil, "", apperror.NewNotFoundError("Sale")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	data := buildReceiptData(sale, settings)

	var body []byte
	switch format {
	case "", "html":
		body, err = receipt.RenderHTML(data)
		if err != nil {
			return nil, "", err
		}
		if err := s.saleRepo.MarkPrinted(ctx, saleID, time.Now()); err != nil {
			return nil, "", err
		}
		return body, "text/html; charset=utf-8", nil
	case "text":
		body = []byte(receipt.RenderText(data))
		if err := s.saleRepo.MarkPrinted(ctx, saleID, time.Now()); err != nil {
			return nil, "", err
		}
		return body, "text/plain; charset=utf-8", nil
	}

	return nil, "", apperror.NewBadRequestError(fmt.Sprintf("Unknown receipt format '%s'", format))
}

func buildReceiptData(sale *entity.Sale, settings *entity.StoreSettings) *receipt.Data {
	data := &receipt.Data{
		ShopName:       settings.ShopName,
		ReceiptNo:      sale.ReceiptNo,
		Date:           sale.SaleDate,
		Cashier:        sale.User.Name,
		SubTotal:       float64(sale.SubTotal) / 100,
		DepositTotal:   float64(sale.DepositTotal) / 100,
		DiscountTotal:  float64(sale.DiscountTotal) / 100,
		PointsRedeemed: sale.PointsRedeemed,
		GrandTotal:     float64(sale.GrandTotal) / 100,
		PaymentMethod:  paymentLabel(sale.PaymentMethod, settings.Language),
		Tendered:       float64(sale.Tendered) / 100,
		Change:         float64(sale.Change) / 100,
		PointsEarned:   sale.PointsEarned,
		Currency:       settings.Currency,
		Language:       settings.Language,
		Voided:         sale.Status == enum.SaleVoided,
	}
	if settings.ShopAddress != nil {
		data.Address = *settings.ShopAddress
	}
	if settings.ShopPhone != nil {
		data.Phone = *settings.ShopPhone
	}
	if settings.TaxID != nil {
		data.TaxID = *settings.TaxID
	}
	if settings.ReceiptFooter != nil {
		data.Footer = *settings.ReceiptFooter
	}
	if sale.Customer != nil {
		data.Customer = sale.Customer.Name
	}

	data.Lines = make([]receipt.Line, 0, len(sale.Items))
	for i := range sale.Items {
		item := &sale.Items[i]
		data.Lines = append(data.Lines, receipt.Line{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Deposit:   float64(item.DepositCharged) / 100,
			Total:     float64(item.SubTotal) / 100,
			Mode:      gasModeLabel(item.GasSaleType, settings.Language),
		})
	}

	return data
}

func paymentLabel(method enum.PaymentMethod, language string) string {
	if language == "th" {
		switch method {
		case enum.PaymentCash:
			return "เงินสด"
		case enum.PaymentTransfer:
			return "โอนเงิน"
		case enum.PaymentCredit:
			return "เครดิต"
		}
	}
	return method.String()
}

func gasModeLabel(mode enum.GasSaleType, language string) string {
	if mode == enum.GasSaleNone {
		return ""
	}
	if language == "th" {
		switch mode {
		case enum.GasSaleExchange:
			return "แลกถัง"
		case enum.GasSaleDeposit:
			return "มัดจำถัง"
		case enum.GasSaleOutright:
			return "ซื้อขาด"
		}
	}
	return mode.String()
}
