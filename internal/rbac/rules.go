package rbac

// Simple default policy. "user" covers both authoring and responding.
var RolePermissions = map[string][]string{
	"user": {
		"quiz:create",
		"quiz:edit-own",
		"quiz:delete-own",
		"quiz:view",
		"quiz:publish-own",
		"response:submit",
		"response:view-own",
		"response:export-own",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
