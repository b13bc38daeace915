package action

import (
	"github.com/appforge-ai/assistant-platform/internal/model"
)

// RegisterDefaults registers the full capability catalog. Call once at
// startup; later registrations under the same names replace these.
func RegisterDefaults(r *Registry) {
	r.Register(model.ActionDescriptor{
		Name:        "create_project",
		Description: "Create a new application project with a name and package name.",
		Parameters: map[string]model.ParamSpec{
			"name":         {Type: "string", Required: true, Description: "Display name of the project"},
			"package_name": {Type: "string", Required: true, Description: "Application package name, e.g. com.example.app"},
			"version_name": {Type: "string", Required: false, Description: "Initial version name, defaults to 1.0"},
			"min_sdk":      {Type: "number", Required: false, Description: "Minimum SDK level, defaults to 21"},
			"target_sdk":   {Type: "number", Required: false, Description: "Target SDK level, defaults to 34"},
			"theme_color":  {Type: "string", Required: false, Description: "Primary theme color as a hex string"},
		},
		Destructive: false,
		Category:    model.CategoryProject,
	}, newCreateProjectHandler())

	r.Register(model.ActionDescriptor{
		Name:        "update_project_settings",
		Description: "Change settings of the current project, such as name, package or SDK levels.",
		Parameters: map[string]model.ParamSpec{
			"name":         {Type: "string", Required: false, Description: "New display name"},
			"package_name": {Type: "string", Required: false, Description: "New package name"},
			"version_name": {Type: "string", Required: false, Description: "New version name"},
			"version_code": {Type: "number", Required: false, Description: "New version code"},
			"min_sdk":      {Type: "number", Required: false, Description: "New minimum SDK level"},
			"target_sdk":   {Type: "number", Required: false, Description: "New target SDK level"},
			"theme_color":  {Type: "string", Required: false, Description: "New primary theme color"},
		},
		Destructive: false,
		Category:    model.CategoryProject,
	}, newUpdateSettingsHandler())

	r.Register(model.ActionDescriptor{
		Name:        "create_java_file",
		Description: "Create a Java source file under the project's java tree.",
		Parameters: map[string]model.ParamSpec{
			"path":    {Type: "string", Required: true, Description: "File path under java/, ending in .java"},
			"content": {Type: "string", Required: true, Description: "Full file content"},
		},
		Destructive: false,
		Category:    model.CategoryFile,
	}, newCreateFileHandler("create_java_file", ".java"))

	r.Register(model.ActionDescriptor{
		Name:        "create_xml_file",
		Description: "Create an XML resource file under the project's res tree.",
		Parameters: map[string]model.ParamSpec{
			"path":    {Type: "string", Required: true, Description: "File path under res/, ending in .xml"},
			"content": {Type: "string", Required: true, Description: "Full file content"},
		},
		Destructive: false,
		Category:    model.CategoryFile,
	}, newCreateFileHandler("create_xml_file", ".xml"))

	r.Register(model.ActionDescriptor{
		Name:        "edit_file",
		Description: "Rewrite an existing project file. Modes: overwrite, append, prepend.",
		Parameters: map[string]model.ParamSpec{
			"path":    {Type: "string", Required: true, Description: "Path of the file to edit"},
			"content": {Type: "string", Required: true, Description: "Content to write"},
			"mode":    {Type: "string", Required: false, Description: "overwrite (default), append or prepend"},
		},
		Destructive: true,
		Category:    model.CategoryFile,
	}, newEditFileHandler())

	r.Register(model.ActionDescriptor{
		Name:        "delete_file",
		Description: "Delete a project file.",
		Parameters: map[string]model.ParamSpec{
			"path": {Type: "string", Required: true, Description: "Path of the file to delete"},
		},
		Destructive: true,
		Category:    model.CategoryFile,
	}, newDeleteFileHandler())

	r.Register(model.ActionDescriptor{
		Name:        "read_file",
		Description: "Read the content of a project file.",
		Parameters: map[string]model.ParamSpec{
			"path": {Type: "string", Required: true, Description: "Path of the file to read"},
		},
		Destructive: false,
		Category:    model.CategoryFile,
	}, newReadFileHandler())

	r.Register(model.ActionDescriptor{
		Name:        "list_files",
		Description: "List the entries of a project directory.",
		Parameters: map[string]model.ParamSpec{
			"path": {Type: "string", Required: true, Description: "Directory path to list"},
		},
		Destructive: false,
		Category:    model.CategoryFile,
	}, newListFilesHandler())

	// Legacy umbrella action older prompts still emit.
	r.Register(model.ActionDescriptor{
		Name:        "fix_code",
		Description: "Rewrite a file wholesale to fix a reported problem. Deprecated, use edit_file.",
		Parameters: map[string]model.ParamSpec{
			"path":    {Type: "string", Required: true, Description: "Path of the file to fix"},
			"content": {Type: "string", Required: true, Description: "Corrected file content"},
		},
		Destructive: true,
		Category:    model.CategoryFile,
	}, newFixCodeHandler())
}
