package services

// ServiceContainer holds all service facades needed by the handlers.
// This keeps route registration signatures stable as services are added.
type ServiceContainer struct {
	User        UserSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthHandlerSvcFacade
	Workspace   WorkspaceSvcFacade
	Authorizer  AuthorizerSvc
	Project     ProjectSvcFacade
	Invitation  InvitationSvcFacade
	Task        TaskSvcFacade
}
