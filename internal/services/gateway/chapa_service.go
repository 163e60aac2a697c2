package gateway

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"guzo_backend/internal/config"
)

// ChapaService собирает платежные ссылки и проверяет подписи callback'ов.
// Суммы в подписи всегда с двумя знаками, иначе хэши не сойдутся.
type ChapaService struct {
	MerchantLogin string
	Password1     string
	Password2     string
	BaseURL       string
}

func NewChapaService(cfg *config.Config) *ChapaService {
	baseURL := cfg.Payment.BaseURL
	if baseURL == "" {
		baseURL = "https://checkout.chapa.co/checkout/pay"
	}
	return &ChapaService{
		MerchantLogin: cfg.Payment.MerchantLogin,
		Password1:     cfg.Payment.Password1,
		Password2:     cfg.Payment.Password2,
		BaseURL:       baseURL,
	}
}

// GeneratePaymentURL создаёт ссылку на оплату.
func (g *ChapaService) GeneratePaymentURL(code string, amount float64, currency, description, email string) (string, error) {
	signature := g.generateSignature(code, amount)
	params := url.Values{}

	params.Set("merchant", g.MerchantLogin)
	params.Set("amount", fmt.Sprintf("%.2f", amount))
	params.Set("currency", currency)
	params.Set("tx_ref", code)
	params.Set("description", description)
	params.Set("email", email)
	params.Set("signature", signature)

	return fmt.Sprintf("%s?%s", g.BaseURL, params.Encode()), nil
}

// generateSignature формирует MD5-подпись для исходящего запроса.
func (g *ChapaService) generateSignature(code string, amount float64) string {
	plain := fmt.Sprintf("%s:%.2f:%s:%s", g.MerchantLogin, amount, code, g.Password1)
	hash := md5.Sum([]byte(plain))
	return strings.ToUpper(hex.EncodeToString(hash[:]))
}

// VerifyResultSignature проверяет подпись нотификации от шлюза.
func (g *ChapaService) VerifyResultSignature(amount float64, code, receivedSig string) bool {
	plain := fmt.Sprintf("%.2f:%s:%s", amount, code, g.Password2)
	hash := md5.Sum([]byte(plain))
	expectedSig := strings.ToUpper(hex.EncodeToString(hash[:]))
	return strings.EqualFold(expectedSig, receivedSig)
}
