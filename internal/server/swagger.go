package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title Pagetext API
// @version 0.1
// @description Fetches a web page and returns its readable text.
// @contact.name Pagetext Maintainers
// @contact.url https://github.com/raysh454/pagetext
// @BasePath /
