// SPDX-License-Identifier: MPL-2.0

package issue

import "github.com/charmbracelet/glamour"

type (
	// Id identifies a guide in the catalog. Zero means no guide.
	Id int

	// Issue is a Markdown guide shown under a failure.
	Issue struct {
		id    Id
		mdMsg string
	}
)

const (
	ConfigLoadFailedId Id = iota + 1
	PackageDirNotFoundId
	BuildFailedId
	InstallFailedId
	CommandTimedOutId
	RequiredPackageMissingId
	PermissionDeniedId
)

// Id returns the catalog key of the guide.
func (i *Issue) Id() Id {
	return i.id
}

// Render renders the guide with the named glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.mdMsg, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

depconf reads its settings from, in order of precedence:
1. DEPCONF_* environment variables and command-line flags
2. The file given with --config
3. config.cue in the depconf config directory
4. depconf.cue in the current directory

## Things you can try:
- Check the error message above for the specific line/column
- Write a fresh default file and compare:
~~~
$ depconf config init
~~~
- Inspect the effective values:
~~~
$ depconf config show
~~~`,
	}

	packageDirNotFoundIssue = &Issue{
		id: PackageDirNotFoundId,
		mdMsg: `
# Package source not found!

The package is enabled but no extracted source tree was found.

## Search locations (in order of precedence):
1. --package-dir name=path, or packages.<name>.dir in the config file
2. <root>/<arch>/externalpackages/<name>*
3. <root>/externalpackages/<name>*

## Things you can try:
- Download the tarball listed above and extract it into externalpackages/
- Point depconf at an existing tree:
~~~
$ depconf configure --package-dir lgrind=/path/to/lgrind-dev
~~~
- Disable the package:
~~~
$ depconf configure --without lgrind
~~~`,
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# Package build failed!

The package's makefile did not complete successfully. The compiler output is shown above.

## Things you can try:
- Check that the compiler for the package language is installed
- Select another compiler in the config file:
~~~cue
compilers: {
	C: "gcc"
}
~~~
- Continue without the package in a non-interactive run:
~~~
$ depconf configure --with-batch
~~~`,
	}

	installFailedIssue = &Issue{
		id: InstallFailedId,
		mdMsg: `
# Package install failed!

The package compiled, but its executable could not be moved into the install tree.

## Things you can try:
- Check that <root>/<arch>/bin is writable
- Check that the build produced the expected executable name
- Remove stale files from <root>/<arch>/bin and run again`,
	}

	commandTimedOutIssue = &Issue{
		id: CommandTimedOutId,
		mdMsg: `
# Command timed out!

An external command ran longer than its configured timeout and was stopped.

## Things you can try:
- Raise the limit in the config file:
~~~cue
timeouts: {
	build: 5000
}
~~~
- Or through the environment:
~~~
$ DEPCONF_TIMEOUTS_BUILD=5000 depconf configure
~~~`,
	}

	requiredPackageMissingIssue = &Issue{
		id: RequiredPackageMissingId,
		mdMsg: `
# Required package not installed!

A package marked as required did not end up installed, so the configuration is incomplete.

## Things you can try:
- Enable the package:
~~~
$ depconf configure --with <name>
~~~
- Fix the build error reported above and run again
- Mark the package optional in the config file:
~~~cue
packages: {
	lgrind: required: false
}
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Things you can try:
- Check file/directory permissions under the project root
- Run depconf from a directory you own`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		packageDirNotFoundIssue.Id():     packageDirNotFoundIssue,
		buildFailedIssue.Id():            buildFailedIssue,
		installFailedIssue.Id():          installFailedIssue,
		commandTimedOutIssue.Id():        commandTimedOutIssue,
		requiredPackageMissingIssue.Id(): requiredPackageMissingIssue,
		permissionDeniedIssue.Id():       permissionDeniedIssue,
	}
)

// Get returns the guide for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
