package payroll

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	payrollerrors "github.com/nosakhare/simple-payroll/internal/payroll/errors"
)

// AddAdjustment appends a ledger entry against one payroll item and recomputes
// the item's net pay from the full adjustment history. The owning run must be
// Active or Processing. Deduction amounts are entered positive and stored
// negative.
func (s *service) AddAdjustment(ctx context.Context, itemID, actorID string, req CreateAdjustmentRequest) (*PayrollItem, error) {
	if !ValidAdjustmentType(req.Type) {
		return nil, payrollerrors.ErrInvalidAdjustmentType.WithDetail(req.Type)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, payrollerrors.ErrAdjustmentAmount
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	item, err := qtx.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrItemNotFound
		}
		return nil, err
	}

	owner, err := qtx.FindByID(ctx, item.PayrollID)
	if err != nil {
		return nil, err
	}

	if owner.Status != StatusActive && owner.Status != StatusProcessing {
		return nil, payrollerrors.ErrNotAdjustable.WithDetail("payroll " + owner.ID + " is " + owner.Status)
	}

	amount := req.Amount
	if req.Type == AdjustmentDeduction {
		amount = amount.Neg()
	}

	adjustment := &PayrollAdjustment{
		PayrollID:     item.PayrollID,
		PayrollItemID: item.ID,
		Type:          req.Type,
		Description:   req.Description,
		Amount:        amount,
		CreatedBy:     actorID,
	}

	if err := qtx.CreateAdjustment(ctx, adjustment); err != nil {
		return nil, err
	}

	history, err := qtx.FindAdjustmentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	item.NetPay = RecalculateNetPay(item, history)
	item.IsAdjusted = true

	if err := qtx.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	if err := s.applyTotalsDelta(ctx, qtx, owner); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("payroll adjustment added",
		zap.String("payroll_item_id", itemID),
		zap.String("type", req.Type),
		zap.String("amount", amount.String()),
	)

	return item, nil
}

// RecalculateNetPay derives net pay from the item's base figures plus the
// complete adjustment history, never incrementally. Deduction entries carry
// negative amounts, so subtracting their sum increases total deductions.
func RecalculateNetPay(item *PayrollItem, history []PayrollAdjustment) decimal.Decimal {
	positive := decimal.Zero
	negative := decimal.Zero

	for _, adj := range history {
		switch adj.Type {
		case AdjustmentBonus, AdjustmentReimbursement:
			positive = positive.Add(adj.Amount)
		case AdjustmentDeduction:
			negative = negative.Add(adj.Amount)
		}
	}

	totalDeductions := item.TaxAmount.
		Add(item.PensionAmount).
		Add(item.NHFAmount).
		Add(item.OtherDeductions).
		Sub(negative)

	return item.GrossPay.Add(positive).Sub(totalDeductions)
}

// applyTotalsDelta re-derives the run totals from its items after an
// adjustment changed one item's net pay.
func (s *service) applyTotalsDelta(ctx context.Context, qtx Repository, owner *Payroll) error {
	items, err := qtx.FindItems(ctx, owner.ID)
	if err != nil {
		return err
	}

	totalGross := decimal.Zero
	totalNet := decimal.Zero
	for _, it := range items {
		totalGross = totalGross.Add(it.GrossPay)
		totalNet = totalNet.Add(it.NetPay)
	}

	owner.TotalGross = totalGross
	owner.TotalNet = totalNet
	owner.TotalDeductions = totalGross.Sub(totalNet)

	return qtx.Update(ctx, owner)
}
