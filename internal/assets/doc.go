// Package assets provides in-memory collaborators for asset fields: a Server
// that hands out handles and a Tracker that collects discovered dependencies.
package assets
