package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"sellpanel/internal/exchange"
	"sellpanel/internal/models"
)

var ErrOrderIDRequired = errors.New("Не задан идентификатор заявки")

// PlaceOrder проводит заявку через проверку, отправку и учёт.
// На каждом пути завершения в журнал попадает ровно одна запись:
// дозапись выполняется в defer вместе с перехватом паники.
func (e *Engine) PlaceOrder(ctx context.Context, side models.OrderSide, price, quantity string) (entry models.JournalEntry) {
	nonce := uuid.New().String()

	entry = models.JournalEntry{
		Timestamp: time.Now(),
		UUID:      nonce,
		OrderType: models.OrderTypeLimit,
		Side:      side,
		Price:     price,
		Quantity:  quantity,
		Status:    models.EntryStatusInitiated,
	}

	defer func() {
		if r := recover(); r != nil {
			entry.Status = models.EntryStatusProcessingError
			entry.ErrorMessage = fmt.Sprintf("%v", r)
			e.log.WithNonce(nonce).WithField("component", "engine").WithField("panic", r).Error("Сбой при обработке заявки.")
		}
		if err := e.journal.Append(entry); err != nil {
			e.logEntry().WithError(err).Error("Не удалось записать журнал заявок.")
		}
	}()

	priceVal, err := parseDecimal(price)
	if err != nil {
		entry.Status = models.EntryStatusInputError
		entry.ErrorMessage = fmt.Sprintf("Некорректная цена: %v", err)
		return entry
	}
	qtyVal, err := parseDecimal(quantity)
	if err != nil {
		entry.Status = models.EntryStatusInputError
		entry.ErrorMessage = fmt.Sprintf("Некорректный объём: %v", err)
		return entry
	}

	if err := ValidateOrder(priceVal, qtyVal, e.rules); err != nil {
		entry.Status = models.EntryStatusInputError
		entry.ErrorMessage = err.Error()
		e.logEntry().WithError(err).Warn("Заявка не прошла проверку.")
		return entry
	}

	placed, err := e.client.PlaceOrder(ctx, exchange.OrderRequest{
		Nonce: nonce,
		Side:  side,
		Type:  models.OrderTypeLimit,
		Price: priceVal,
		Qty:   qtyVal,
	})
	if err != nil {
		entry.Status = models.EntryStatusAPIError
		entry.ErrorMessage = err.Error()
		e.logEntry().WithError(err).Warn("Биржа не приняла заявку.")
		return entry
	}

	entry.Status = models.EntryStatusSuccess
	entry.OrderID = placed.OrderID
	entry.Response = placed.Raw

	e.trackOrder(nonce, models.TrackedOrder{
		OrderID:  placed.OrderID,
		Status:   models.TrackStatusPending,
		Side:     side,
		Type:     models.OrderTypeLimit,
		Price:    price,
		Quantity: quantity,
	})

	e.log.WithOrderID(placed.OrderID).WithField("component", "engine").WithField("side", side).Info("Заявка принята биржей.")
	return entry
}

func (e *Engine) CancelOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return ErrOrderIDRequired
	}

	if _, err := e.client.CancelOrder(ctx, orderID); err != nil {
		e.log.WithOrderID(orderID).WithError(err).Warn("Не удалось отменить заявку.")
		return err
	}

	e.log.WithOrderID(orderID).WithField("component", "engine").Info("Заявка отменена.")
	return nil
}

func (e *Engine) OrderDetail(ctx context.Context, orderID string) (models.Order, error) {
	if orderID == "" {
		return models.Order{}, ErrOrderIDRequired
	}
	return e.client.GetOrderDetail(ctx, orderID)
}

// Quantity считает объём по проценту доступного баланса из кэша.
func (e *Engine) Quantity(ctx context.Context, side models.OrderSide, percentage int, price string) (qty, krwEquivalent float64, err error) {
	priceVal := 0.0
	if price != "" {
		priceVal, err = parseDecimal(price)
		if err != nil {
			return 0, 0, fmt.Errorf("Некорректная цена: %w", err)
		}
	}

	balances := e.cache.Balances()
	availableKRW := balances[strings.ToLower(e.rules.QuoteCurrency)].Available
	availableUSDT := balances[strings.ToLower(e.rules.TargetCurrency)].Available

	return CalcOrderQuantity(side, percentage, priceVal, availableKRW, availableUSDT, e.rules.QtyStep)
}

// parseDecimal разбирает пользовательский ввод, допуская разделители
// тысяч, как их отдаёт панель ("1,350").
func parseDecimal(value string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return 0, errors.New("пустое значение")
	}
	return strconv.ParseFloat(cleaned, 64)
}
