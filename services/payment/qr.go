package payment

import (
	"fmt"

	"globaled/models"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// QRPayload is the string encoded in a milestone's mock wallet QR code.
func QRPayload(milestone models.Milestone) string {
	return fmt.Sprintf("GlobalEdPaymentForMilestone%d", milestone.ID)
}

// MilestoneQR renders a PNG QR code for scanning with a wallet app. Only the
// pending milestone can be paid.
func MilestoneQR(plan models.PaymentPlan, milestoneID int) ([]byte, error) {
	idx := indexOf(plan.Milestones, milestoneID)
	if idx == -1 {
		return nil, fmt.Errorf("milestone %d: %w", milestoneID, ErrMilestoneNotFound)
	}
	m := plan.Milestones[idx]
	if m.Status != models.MilestonePending {
		return nil, fmt.Errorf("milestone %d is %s: %w", milestoneID, m.Status, ErrMilestoneNotPending)
	}
	png, err := qrcode.Encode(QRPayload(m), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
