package handlers

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"p9e.in/frota/models"
)

// BuildWhatsAppLink renders a wa.me deep link pre-filled with the
// requisition summary and numbered reply options, so an approver can
// answer the poll from the chat. The plate identifies fleet vehicles in
// the summary; external equipment shows its description instead. String
// templating only; nothing is sent.
func BuildWhatsAppLink(rq models.Requisition, plate string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Requisição nº %d\n", rq.InternalNumber)
	fmt.Fprintf(&b, "Solicitante: %s\n", rq.RequesterName)
	if rq.VehicleID == models.ExternalVehicleID {
		fmt.Fprintf(&b, "Equipamento: %s\n", rq.ExternalType)
	} else if plate != "" {
		fmt.Fprintf(&b, "Veículo: %s\n", plate)
	} else {
		fmt.Fprintf(&b, "Veículo: %s\n", rq.VehicleID)
	}
	fmt.Fprintf(&b, "Produto: %s\n", rq.Product)
	if rq.FillTank {
		b.WriteString("Quantidade: tanque cheio\n")
	} else {
		fmt.Fprintf(&b, "Quantidade: %.1f L\n", rq.Quantity)
	}
	fmt.Fprintf(&b, "Data: %s %s\n", rq.RequestDate, rq.RequestTime)
	b.WriteString("\nResponda com o número:\n")
	b.WriteString("1 - Aprovar\n")
	b.WriteString("2 - Rejeitar")

	link := "https://wa.me/"
	if phone := os.Getenv("APPROVER_PHONE"); phone != "" {
		link += phone
	}
	return link + "?text=" + url.QueryEscape(b.String())
}
