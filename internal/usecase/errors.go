package usecase

import "errors"

// ConfigurationError: falta de configuração (API key, template default, conta
// de saída, destinatário de teste). Sempre exposto ao usuário, nunca retentado.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// NotFoundError: lead ou template desconhecido.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// UpstreamResponseError: resposta da IA malformada ou incompleta. Carrega um
// trecho bruto da resposta para diagnóstico.
type UpstreamResponseError struct {
	Message    string
	RawExcerpt string
}

func (e *UpstreamResponseError) Error() string {
	return e.Message
}

// DeliveryError: o transporte rejeitou o envio.
type DeliveryError struct {
	Message string
}

func (e *DeliveryError) Error() string {
	return e.Message
}

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
