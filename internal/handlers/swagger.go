package handlers

// @title Users API
// @version 1.0
// @description Serverless API to fetch and create users stored in a DynamoDB table

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /

// @tag.name users
// @tag.description User operations
