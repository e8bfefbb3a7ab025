package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tacodelsol/tacodelsol-api/initializers"
	"github.com/tacodelsol/tacodelsol-api/models"
	"github.com/tacodelsol/tacodelsol-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Webhook events older than this are rejected to blunt replay.
const signatureTolerance = 5 * time.Minute

// VerifyWebhookSignature checks the Stripe-Signature header against the
// payload: the header carries t=<unix> and one or more v1=<hex> entries,
// where v1 is HMAC-SHA256(secret, "<t>.<payload>").
func VerifyWebhookSignature(payload []byte, header, secret string, now time.Time) error {
	if secret == "" {
		return errors.New("webhook secret is not configured")
	}
	if header == "" {
		return errors.New("missing signature header")
	}

	var timestamp int64
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return errors.New("malformed signature timestamp")
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return errors.New("malformed signature header")
	}
	if now.Sub(time.Unix(timestamp, 0)) > signatureTolerance {
		return errors.New("signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	expected := mac.Sum(nil)

	for _, signature := range signatures {
		decoded, err := hex.DecodeString(signature)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return errors.New("no matching signature")
}

type webhookEvent struct {
	Id   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			Id       string            `json:"id"`
			Amount   int64             `json:"amount"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// HandleStripeWebhook is the only place order rows are created: an order
// exists exactly when Stripe has confirmed payment for it.
func HandleStripeWebhook(ctx *gin.Context) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if err := VerifyWebhookSignature(payload, ctx.GetHeader("Stripe-Signature"), secret, time.Now()); err != nil {
		log.Printf("Webhook signature rejected: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event"})
		return
	}

	if event.Type != "payment_intent.succeeded" {
		log.Printf("Ignoring webhook event %s (%s)", event.Id, event.Type)
		ctx.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	order, err := createOrderFromIntent(event.Data.Object.Id, event.Data.Object.Amount, event.Data.Object.Metadata)
	if err != nil {
		log.Printf("Failed to create order for intent %s: %v", event.Data.Object.Id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record order"})
		return
	}
	if order != nil {
		sendOrderConfirmationEmail(order)
	}

	ctx.JSON(http.StatusOK, gin.H{"received": true})
}

// createOrderFromIntent inserts the order for a paid intent. Returns
// (nil, nil) when the order already exists, so duplicate webhook delivery
// is a no-op.
func createOrderFromIntent(intentId string, amountCents int64, metadata map[string]string) (*models.Order, error) {
	if intentId == "" {
		return nil, errors.New("event has no payment intent id")
	}

	var existing models.Order
	err := initializers.DB.Where("payment_intent_id = ?", intentId).First(&existing).Error
	if err == nil {
		log.Printf("Order for intent %s already exists (#%d), skipping", intentId, existing.OrderNumber)
		return nil, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	itemsJSON, err := utils.ReassembleMetadata("items", metadata)
	if err != nil {
		return nil, err
	}
	var items []CheckoutItem
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}

	// The money metadata is written by our own checkout handler, so a parse
	// failure means the intent was not created by us or got mangled.
	subtotal, err := strconv.ParseFloat(metadata["subtotal"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subtotal metadata %q: %w", metadata["subtotal"], err)
	}
	tax, err := strconv.ParseFloat(metadata["tax"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid tax metadata %q: %w", metadata["tax"], err)
	}

	order := models.Order{
		PaymentIntentId:     intentId,
		CustomerName:        metadata["customer_name"],
		CustomerEmail:       metadata["customer_email"],
		CustomerPhone:       metadata["customer_phone"],
		PickupTime:          metadata["pickup_time"],
		SpecialInstructions: metadata["special_instructions"],
		Subtotal:            subtotal,
		Tax:                 tax,
		Total:               float64(amountCents) / 100,
		Status:              models.StatusPending,
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		number, err := nextOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range items {
			customizations, err := json.Marshal(item.Customizations)
			if err != nil {
				return err
			}
			orderItem := models.OrderItem{
				OrderID:        int(order.ID),
				MenuItemId:     item.Id,
				Name:           item.Name,
				Quantity:       item.Quantity,
				BasePrice:      item.Price,
				Customizations: customizations,
				Notes:          item.Notes,
				LineTotal:      item.LineTotal,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Created order #%d for intent %s", order.OrderNumber, intentId)
	return &order, nil
}

// Order numbers start at 1001. The counter row is seeded with an upsert and
// bumped with an atomic in-place update so concurrent webhook deliveries
// cannot hand out the same number or race the first insert.
func nextOrderNumber(tx *gorm.DB) (int, error) {
	seed := models.Counter{Name: "orders", Value: 1000}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, err
	}

	result := tx.Model(&models.Counter{}).
		Where("name = ?", "orders").
		Update("value", gorm.Expr("value + 1"))
	if result.Error != nil {
		return 0, result.Error
	}

	var counter models.Counter
	if err := tx.Where("name = ?", "orders").First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.Value, nil
}

func sendOrderConfirmationEmail(order *models.Order) {
	if order.CustomerEmail == "" {
		return
	}
	emailData := utils.EmailData{
		Name:        order.CustomerName,
		OrderNumber: order.OrderNumber,
		PickupTime:  order.PickupTime,
		Total:       fmt.Sprintf("$%.2f", order.Total),
		Message:     "We got your order and the kitchen is on it. We'll have it ready for your pickup time.",
		LogoURL:     "https://www.tacodelsol.kitchen/images/logo.png",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	subject := fmt.Sprintf("Taco del Sol order #%d", order.OrderNumber)
	if err := utils.SendEmail(order.CustomerEmail, subject, emailData, templatePath); err != nil {
		log.Println("Error sending confirmation email:", err)
	} else {
		log.Println("Confirmation email sent to:", order.CustomerEmail)
	}
}
