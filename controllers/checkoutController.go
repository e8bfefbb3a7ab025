package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tacodelsol/tacodelsol-api/models"
	"github.com/tacodelsol/tacodelsol-api/pricing"
	"github.com/tacodelsol/tacodelsol-api/utils"
)

const (
	defaultStripeAPIBase = "https://api.stripe.com/v1"

	// Stripe rejects charges under 50 cents.
	minimumChargeCents = 50
)

// stripeAPIBase allows pointing the gateway at a stub server.
func stripeAPIBase() string {
	if base := os.Getenv("STRIPE_API_BASE"); base != "" {
		return base
	}
	return defaultStripeAPIBase
}

type CheckoutItem struct {
	Id             string              `json:"id" binding:"required"`
	Name           string              `json:"name"`
	Quantity       int                 `json:"quantity" binding:"required,min=1"`
	Price          float64             `json:"price"`
	Notes          string              `json:"notes"`
	Customizations []pricing.Selection `json:"customizations"`
	LineTotal      float64             `json:"lineTotal"`
}

type CheckoutRequest struct {
	Amount              int64          `json:"amount" binding:"required"`
	CustomerEmail       string         `json:"customerEmail" binding:"required,email"`
	CustomerName        string         `json:"customerName" binding:"required"`
	CustomerPhone       string         `json:"customerPhone" binding:"required"`
	PickupTime          string         `json:"pickupTime" binding:"required"`
	Items               []CheckoutItem `json:"items" binding:"required,min=1"`
	SpecialInstructions string         `json:"specialInstructions"`
	Subtotal            float64        `json:"subtotal"`
	Tax                 float64        `json:"tax"`
}

// repriceCart recomputes every line against the catalog and returns the
// priced lines plus subtotal/tax/total. Client-sent prices are ignored.
func repriceCart(items []CheckoutItem, taxRate float64) ([]CheckoutItem, decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	lineTotals := make([]decimal.Decimal, 0, len(items))
	priced := make([]CheckoutItem, 0, len(items))

	for _, reqItem := range items {
		menuItem, ok := models.FindMenuItem(reqItem.Id)
		if !ok {
			return nil, decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("unknown menu item %q", reqItem.Id)
		}

		selections := pricing.NormalizeSelections(menuItem, reqItem.Customizations)
		lineTotal := pricing.LineTotal(menuItem, selections, reqItem.Quantity)
		lineTotals = append(lineTotals, lineTotal)

		reqItem.Name = menuItem.Name
		reqItem.Price = menuItem.Price
		reqItem.Customizations = selections
		reqItem.LineTotal, _ = lineTotal.Float64()
		priced = append(priced, reqItem)
	}

	subtotal, tax, total := pricing.Totals(lineTotals, taxRate)
	return priced, subtotal, tax, total, nil
}

// CreateCheckout validates the cart, reprices it server-side and creates a
// Stripe PaymentIntent carrying the order data in chunked metadata.
func CreateCheckout(ctx *gin.Context) {
	var checkout CheckoutRequest
	if err := ctx.ShouldBindJSON(&checkout); err != nil {
		log.Printf("JSON binding error: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if checkout.Amount < minimumChargeCents {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Order total must be at least $0.50"})
		return
	}

	settings := loadSettings()
	if !settings.AcceptingOrders {
		message := settings.PauseMessage
		if message == "" {
			message = "We are not taking orders right now."
		}
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": message})
		return
	}

	pricedItems, subtotal, tax, total, err := repriceCart(checkout.Items, settings.TaxRate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amountCents := total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if amountCents < minimumChargeCents {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Order total must be at least $0.50"})
		return
	}
	// Reject carts whose client-side total drifted from the server reprice.
	if checkout.Amount != amountCents {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cart total does not match menu prices, refresh and try again"})
		return
	}

	secretKey := os.Getenv("STRIPE_SECRET_KEY")
	if secretKey == "" {
		log.Println("STRIPE_SECRET_KEY is not set")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Payment is not configured"})
		return
	}

	itemsJSON, err := json.Marshal(pricedItems)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize order"})
		return
	}

	formData := map[string]string{
		"amount":                             strconv.FormatInt(amountCents, 10),
		"currency":                           "usd",
		"automatic_payment_methods[enabled]": "true",
		"receipt_email":                      checkout.CustomerEmail,
		"metadata[customer_name]":            checkout.CustomerName,
		"metadata[customer_email]":           checkout.CustomerEmail,
		"metadata[customer_phone]":           checkout.CustomerPhone,
		"metadata[pickup_time]":              checkout.PickupTime,
		"metadata[special_instructions]":     checkout.SpecialInstructions,
		"metadata[subtotal]":                 subtotal.StringFixed(2),
		"metadata[tax]":                      tax.StringFixed(2),
	}
	for key, chunk := range utils.ChunkMetadata("items", string(itemsJSON)) {
		formData["metadata["+key+"]"] = chunk
	}

	resp, err := resty.New().SetTimeout(30*time.Second).
		R().
		SetAuthToken(secretKey).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetFormData(formData).
		Post(stripeAPIBase() + "/payment_intents")

	if err != nil {
		log.Printf("Stripe request error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reach payment gateway"})
		return
	}
	if resp.StatusCode() != http.StatusOK {
		log.Printf("Stripe error %d: %s", resp.StatusCode(), resp.Body())
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway rejected the request"})
		return
	}

	var intent struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.Unmarshal(resp.Body(), &intent); err != nil || intent.ClientSecret == "" {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid response from payment gateway"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}
