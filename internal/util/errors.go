package util

import "errors"

var (
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrInteractionNotFound = errors.New("interação não encontrada")
	ErrEmptyResponse       = errors.New("resposta vazia do serviço de análise")
	ErrNoExercisesFound    = errors.New("nenhum exercício encontrado no recurso")
	ErrSessionNotFound     = errors.New("sessão de avaliação não encontrada")
	ErrSessionCompleted    = errors.New("avaliação já concluída")
	ErrInvalidCredentials  = errors.New("credenciais inválidas")
	ErrUnsupportedFileType = errors.New("tipo de arquivo não suportado")
)
