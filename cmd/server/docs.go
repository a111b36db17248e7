// Package main Campus Collab Server API
//
//	@title						Campus Collab Server API
//	@version					1.0
//	@description				Project teams for student threads: projects, applications, membership and notifications.
//
//	@contact.name				Campus Collab Maintainers
//
//	@license.name				MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"
//
//	@tag.name					Projects
//	@tag.description			Project posting and collaboration info
//
//	@tag.name					Applications
//	@tag.description			Applying, deciding, leaving and removing members
//
//	@tag.name					Membership
//	@tag.description			Team roster and the caller's own membership
//
//	@tag.name					Notifications
//	@tag.description			Lifecycle notifications for the current user
package main
