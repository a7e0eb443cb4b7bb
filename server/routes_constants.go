package server

const (
	RouteAuthRegister = "/auth/register"
	RouteAuthLogin    = "/auth/login"
	RouteAuthRefresh  = "/auth/refresh"
	RouteAuthMe       = "/auth/me"

	RouteProjects           = "/projects"
	RouteProject            = "/projects/{projectId}"
	RouteProjectMemberships = "/projects/{projectId}/memberships"
	RouteProjectMembership  = "/projects/{projectId}/memberships/{membershipId}"

	RouteProjectTasks = "/projects/{projectId}/tasks"
	RouteProjectTask  = "/projects/{projectId}/tasks/{taskId}"

	RouteTaskAttachments       = "/projects/{projectId}/tasks/{taskId}/attachments"
	RouteTaskAttachmentPresign = "/projects/{projectId}/tasks/{taskId}/attachments/presign"

	RouteHealth  = "/health"
	RouteMetrics = "/metrics"
)
