// Package pix builds static Pix "copia e cola" payloads (BR Code, the
// EMV QRCPS-MPM format defined by the Brazilian central bank). A static
// payload encodes the receiving key, merchant info and an optional fixed
// amount; the payer's bank app reads it from a QR code or pasted text.
package pix

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EMV field IDs used by a static Pix payload
const (
	idPayloadFormat       = "00"
	idMerchantAccountInfo = "26"
	idMerchantCategory    = "52"
	idCurrency            = "53"
	idAmount              = "54"
	idCountryCode         = "58"
	idMerchantName        = "59"
	idMerchantCity        = "60"
	idAdditionalData      = "62"
	idCRC                 = "63"

	gui         = "br.gov.bcb.pix"
	currencyBRL = "986"
)

type Payload struct {
	Key          string
	MerchantName string
	MerchantCity string
	// Amount is omitted from the payload when zero, producing an
	// open-amount code.
	Amount decimal.Decimal
	// TxID defaults to "***" (static code without reconciliation id).
	TxID string
}

// Build renders the full BR Code string, CRC included.
func (p Payload) Build() string {
	txid := p.TxID
	if txid == "" {
		txid = "***"
	}

	merchantAccount := tlv("00", gui) + tlv("01", p.Key)
	additionalData := tlv("05", txid)

	var b strings.Builder
	b.WriteString(tlv(idPayloadFormat, "01"))
	b.WriteString(tlv(idMerchantAccountInfo, merchantAccount))
	b.WriteString(tlv(idMerchantCategory, "0000"))
	b.WriteString(tlv(idCurrency, currencyBRL))
	if p.Amount.IsPositive() {
		b.WriteString(tlv(idAmount, p.Amount.StringFixed(2)))
	}
	b.WriteString(tlv(idCountryCode, "BR"))
	b.WriteString(tlv(idMerchantName, truncate(p.MerchantName, 25)))
	b.WriteString(tlv(idMerchantCity, truncate(p.MerchantCity, 15)))
	b.WriteString(tlv(idAdditionalData, additionalData))

	// CRC covers everything up to and including its own id+length
	payload := b.String() + idCRC + "04"
	return payload + fmt.Sprintf("%04X", crc16(payload))
}

// tlv renders one id + length + value element
func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// crc16 implements CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF),
// the checksum mandated by the EMV QR spec.
func crc16(data string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(data); i++ {
		crc ^= uint16(data[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
