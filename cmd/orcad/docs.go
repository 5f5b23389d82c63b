package main

// General API documentation for swaggo. Regenerate with
// `swag init -g cmd/orcad/docs.go -o docs`.
//
// @title           orcad API
// @version         1.0
// @description     GPU-aware residency orchestration for local model hosts (Ollama, LM Studio, Orpheus TTS).
//
// @contact.name   orcad maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
