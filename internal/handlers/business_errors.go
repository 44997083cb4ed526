package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lumesistemas/clinic-manager/internal/httperr"
)

type businessMapping struct {
	status  func(c *gin.Context, code, message string)
	message string
}

// Códigos de negócio viram respostas uniformes aqui; nada de pânico ou
// erro cru vazando para a camada de apresentação.
var businessMappings = map[string]businessMapping{
	"missing_client":           {httperr.BadRequest, "Selecione um cliente."},
	"invalid_date_or_time":     {httperr.BadRequest, "Data ou hora inválida."},
	"invalid_time_range":       {httperr.BadRequest, "Intervalo de horário inválido."},
	"invalid_status":           {httperr.BadRequest, "Status inválido."},
	"time_conflict":            {httperr.BadRequest, "Conflito de horário do profissional."},
	"room_conflict":            {httperr.BadRequest, "Conflito de horário da sala."},
	"clinic_not_found":         {httperr.NotFound, "Clínica não encontrada."},
	"client_not_found":         {httperr.NotFound, "Cliente não encontrado."},
	"service_not_found":        {httperr.NotFound, "Serviço não encontrado."},
	"appointment_not_found":    {httperr.NotFound, "Agendamento não encontrado."},
	"package_not_found":        {httperr.NotFound, "Pacote não encontrado."},
	"block_not_found":          {httperr.NotFound, "Bloqueio não encontrado."},
	"budget_not_found":         {httperr.NotFound, "Orçamento não encontrado."},
	"transaction_not_found":    {httperr.NotFound, "Lançamento não encontrado."},
	"payment_method_not_found": {httperr.NotFound, "Forma de pagamento não encontrada."},
	"account_not_found":        {httperr.NotFound, "Conta não encontrada."},
	"no_sessions_left":         {httperr.BadRequest, "Pacote sem sessões disponíveis."},
	"invalid_session_count":    {httperr.BadRequest, "Quantidade de sessões inválida."},
	"empty_cart":               {httperr.BadRequest, "A venda precisa de ao menos um item."},
	"empty_budget":             {httperr.BadRequest, "O orçamento precisa de ao menos um item."},
	"invalid_item_quantity":    {httperr.BadRequest, "Quantidade de item inválida."},
	"invalid_installments":     {httperr.BadRequest, "Número de parcelas inválido."},
	"invalid_budget_status":    {httperr.BadRequest, "Status de orçamento inválido."},
	"missing_description":      {httperr.BadRequest, "Descrição obrigatória."},
	"invalid_transaction_type": {httperr.BadRequest, "Tipo de lançamento inválido."},
	"invalid_amount":           {httperr.BadRequest, "Valor inválido."},
	"already_paid":             {httperr.BadRequest, "Lançamento já está pago."},
	"register_already_open":    {httperr.BadRequest, "Já existe um caixa aberto para este usuário."},
	"no_open_register":         {httperr.BadRequest, "Nenhum caixa aberto."},
}

// writeUsecaseError converte o erro de um caso de uso na resposta HTTP.
func writeUsecaseError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		if m, ok := businessMappings[be.Code]; ok {
			m.status(c, be.Code, m.message)
			return
		}
		httperr.BadRequest(c, be.Code, "Operação inválida.")
		return
	}

	httperr.Internal(c, fallbackCode, fallbackMessage)
}
