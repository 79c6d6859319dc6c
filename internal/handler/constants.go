package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for edit routes.
	RouteSuffixEdit = "/edit"
	// RouteSuffixExport is the suffix for CSV export routes.
	RouteSuffixExport = "/export"
	// RouteSuffixTranslate is the suffix for AI translation routes.
	RouteSuffixTranslate = "/translate"
	// RouteSuffixResetPassword is the suffix for password reset routes.
	RouteSuffixResetPassword = "/reset-password"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteLanguage is the admin language preference route.
	RouteLanguage = "/language"

	// RouteBlog is the blog route, public and admin.
	RouteBlog = "/blog"
	// RouteServices is the public services route.
	RouteServices = "/services"
	// RouteAbout is the public about route.
	RouteAbout = "/about"
	// RouteContact is the public contact route.
	RouteContact = "/contact"
	// RouteConsultation is the public consultation-request route.
	RouteConsultation = "/consultation"

	// RouteUsers is the users admin route.
	RouteUsers = "/users"
	// RouteRoles is the roles admin route.
	RouteRoles = "/roles"
	// RouteConsultations is the consultations admin route.
	RouteConsultations = "/consultations"
	// RouteContacts is the contact messages admin route.
	RouteContacts = "/contacts"
	// RouteUpload is the image upload route.
	RouteUpload = "/upload"

	// RouteUsersID is the users ID route pattern.
	RouteUsersID = RouteUsers + RouteParamID
	// RouteRolesID is the roles ID route pattern.
	RouteRolesID = RouteRoles + RouteParamID
	// RouteBlogID is the blog ID route pattern.
	RouteBlogID = RouteBlog + RouteParamID
	// RouteConsultationsID is the consultations ID route pattern.
	RouteConsultationsID = RouteConsultations + RouteParamID
	// RouteContactsID is the contacts ID route pattern.
	RouteContactsID = RouteContacts + RouteParamID
)

const (
	redirectAdmin              = "/admin"
	redirectAdminBlog          = redirectAdmin + RouteBlog
	redirectAdminBlogNew       = redirectAdminBlog + RouteSuffixNew
	redirectAdminUsers         = redirectAdmin + RouteUsers
	redirectAdminRoles         = redirectAdmin + RouteRoles
	redirectAdminConsultations = redirectAdmin + RouteConsultations
	redirectAdminContacts      = redirectAdmin + RouteContacts
	redirectLogin              = redirectAdmin + RouteLogin
)
