// Package docs registers the OpenAPI document served under /swagger.
// Regenerate it from the handler annotations with:
//
//	swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/categories": {
            "get": {
                "description": "Lists every approved entry ordered by name.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List categories or mechanics",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Adds an entry directly, bypassing the proposal queue.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Add a category or mechanic",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Entry Info",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "403": {
                        "description": "Moderator access required"
                    },
                    "409": {
                        "description": "Name already taken"
                    }
                }
            }
        },
        "/mechanics": {
            "get": {
                "description": "Lists every approved entry ordered by name.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List categories or mechanics",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Adds an entry directly, bypassing the proposal queue.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Add a category or mechanic",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Entry Info",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "403": {
                        "description": "Moderator access required"
                    },
                    "409": {
                        "description": "Name already taken"
                    }
                }
            }
        },
        "/categories/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Get a category or mechanic",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Entry ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Update a category or mechanic",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Entry ID",
                        "required": true
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Entry Info",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "403": {
                        "description": "Moderator access required"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "409": {
                        "description": "Name already taken"
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Deletes the entry and detaches it from every game.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Delete a category or mechanic",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Entry ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "{\"message\": \"Deleted\"}"
                    },
                    "403": {
                        "description": "Moderator access required"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/mechanics/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Get a category or mechanic",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Entry ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Update a category or mechanic",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Entry ID",
                        "required": true
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Entry Info",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "403": {
                        "description": "Moderator access required"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "409": {
                        "description": "Name already taken"
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Deletes the entry and detaches it from every game.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Delete a category or mechanic",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Entry ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "{\"message\": \"Deleted\"}"
                    },
                    "403": {
                        "description": "Moderator access required"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/collection": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "collection"
                ],
                "summary": "List my games",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/collection/{gameID}": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Idempotent.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "collection"
                ],
                "summary": "Add a game to my collection",
                "parameters": [
                    {
                        "name": "gameID",
                        "in": "path",
                        "type": "integer",
                        "description": "Game ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "{\"in_collection\": true}"
                    },
                    "404": {
                        "description": "Game not found"
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Idempotent.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "collection"
                ],
                "summary": "Remove a game from my collection",
                "parameters": [
                    {
                        "name": "gameID",
                        "in": "path",
                        "type": "integer",
                        "description": "Game ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "{\"in_collection\": false}"
                    },
                    "404": {
                        "description": "Game not found"
                    }
                }
            }
        },
        "/collection/lucky-shot": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Draws uniformly among my games that support the given number of players.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "collection"
                ],
                "summary": "Pick a random game for a group",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Group size",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            }
        },
        "/invitations/{id}/events": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Server-sent events stream of roster changes (player_joined, player_left, player_removed, invitation_updated, invitation_deleted). The stream ends after invitation_deleted.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Follow an invitation's roster",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Invitation ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "event stream"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/games": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates a new game and associates it with the given categories and mechanics.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "games"
                ],
                "summary": "Create a new game",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Game Info",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "409": {
                        "description": "Title already taken"
                    }
                }
            },
            "get": {
                "description": "Lists every game ordered by title.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "games"
                ],
                "summary": "List games",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/games/{id}": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Updates a game's details and replaces its categories and mechanics.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "games"
                ],
                "summary": "Update a game",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Game ID",
                        "required": true
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "New Game Info",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Game not found"
                    },
                    "409": {
                        "description": "Title already taken"
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Deletes a game, removes it from every collection and deletes the invitations hosting it.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "games"
                ],
                "summary": "Delete a game",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Game ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "{\"message\": \"Game deleted\"}"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Game not found"
                    }
                }
            },
            "get": {
                "description": "Retrieves a game with its categories, mechanics and preview image. Signed-in callers also see whether they own it.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "games"
                ],
                "summary": "Get a single game by ID",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Game ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Game not found"
                    }
                }
            }
        },
        "/games/search": {
            "get": {
                "description": "Case-insensitive title substring search, paginated.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "games"
                ],
                "summary": "Search games by title",
                "parameters": [
                    {
                        "name": "title",
                        "in": "query",
                        "type": "string",
                        "description": "Part of the title"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "description": "Page number"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "description": "Items per page"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/invitations": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Invitations I host, invitations open to me and invitations I joined, each ordered by game time.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "My invitations",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates an invitation for a game from my collection. The host does not take a seat.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Host a game night",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Invitation Info",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/invitations/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Get an invitation by ID",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Invitation ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Invitation not found"
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Only the host may edit. Capacity cannot drop below the players already joined.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Edit an invitation",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Invitation ID",
                        "required": true
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Invitation Info",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "403": {
                        "description": "Only the host can edit"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Delete an invitation",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Invitation ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "{\"message\": \"Invitation deleted\"}"
                    },
                    "403": {
                        "description": "Only the host can delete"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/invitations/{id}/join": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Join an invitation",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Invitation ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "409": {
                        "description": "Invitation is full or already joined"
                    }
                }
            }
        },
        "/invitations/{id}/leave": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Idempotent.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Leave an invitation",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Invitation ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/invitations/{id}/players/{userID}": {
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "The host removes a player from the roster. Idempotent.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invitations"
                ],
                "summary": "Remove a player",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "description": "Invitation ID",
                        "required": true
                    },
                    {
                        "name": "userID",
                        "in": "path",
                        "type": "integer",
                        "description": "Player ID",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Only the host can remove players"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/proposals/{kind}": {
            "post": {
                "description": "Queues a proposal for moderator review. No login required.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "proposals"
                ],
                "summary": "Propose a category or mechanic",
                "parameters": [
                    {
                        "name": "kind",
                        "in": "path",
                        "type": "string",
                        "description": "category or mechanic",
                        "required": true
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Proposal",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Invalid or duplicate name"
                    }
                }
            }
        },
        "/proposals/{kind}/pending": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Pending proposals of a kind ordered by name, for batch review.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "proposals"
                ],
                "summary": "List pending proposals",
                "parameters": [
                    {
                        "name": "kind",
                        "in": "path",
                        "type": "string",
                        "description": "category or mechanic",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Moderator access required"
                    }
                }
            }
        },
        "/proposals/{kind}/review": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Accepted proposals are promoted into the catalog, rejected ones are kept with status 2. Decisions that cannot be applied are listed under conflicts and answered with 409.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "proposals"
                ],
                "summary": "Review a batch of proposals",
                "parameters": [
                    {
                        "name": "kind",
                        "in": "path",
                        "type": "string",
                        "description": "category or mechanic",
                        "required": true
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Decisions",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Moderator access required"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            }
        },
        "/auth/register": {
            "post": {
                "description": "Creates a new user and returns an authentication token.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Registration Info",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "409": {
                        "description": "Conflict"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Authenticates a user with email and password, and returns a new token.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Log in a user",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        },
                        "description": "Login Info",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    },
                    "500": {
                        "description": "Internal server error"
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Revokes the presented token until it expires.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Log out",
                "responses": {
                    "200": {
                        "description": "{\"message\": \"Logged out\"}"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Retrieves the profile of the currently authenticated user.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "Get current user's profile",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "User not found"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Gamebase API",
	Description:      "Board game catalog, collections and game-night invitations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
