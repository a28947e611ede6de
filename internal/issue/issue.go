// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ToolNotFoundId Id = iota + 1
	ToolFailedId
	ConfigLoadFailedId
	PermissionDeniedId
	DeviceMountedId
	DestinationExistsId
	InvalidCropExpressionId
	UnsupportedArchiveId
	NoDisplayId
	PlatformNotSupportedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // catalog key
	mdMsg    MarkdownMsg // rendered with glamour
	docLinks []HttpLink  // upstream manual pages for the wrapped tool
	extLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the full Markdown source, including the "See also" links.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Required tool not found!

toolbelt wraps existing command-line tools and could not find the one this
command needs in your PATH.

## Things you can try:
- Install the tool with your package manager, for example:
~~~
$ sudo apt install rsync imagemagick wodim xsel encfs
~~~
- Point toolbelt at a binary outside PATH in your config file:
~~~cue
tools: {
	convert: "/opt/imagemagick/bin/convert"
}
~~~`,
		extLinks: []HttpLink{"https://packages.debian.org/"},
	}

	toolFailedIssue = &Issue{
		id: ToolFailedId,
		mdMsg: `
# The wrapped tool reported a failure!

The external command ran but exited with a non-zero status. Its own error
output above usually says why.

## Things you can try:
- Re-run with --dry-run to see the exact command line
- Re-run with --verbose for the full error chain
- Run the printed command by hand to experiment with its options`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your toolbelt configuration file could not be read or does not match the schema.

## Things you can try:
- Check the file syntax:
~~~
$ toolbelt config path
$ cue vet "$(toolbelt config path)"
~~~
- Recreate a default file:
~~~
$ toolbelt config init
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

This operation touches devices, raw sockets or kernel settings that normally
require root privileges.

## Things you can try:
- Re-run the command with sudo
- For send-frame, grant the capability instead of running as root:
~~~
$ sudo setcap cap_net_raw+ep "$(command -v toolbelt)"
~~~`,
	}

	deviceMountedIssue = &Issue{
		id: DeviceMountedId,
		mdMsg: `
# The target device is mounted!

Writing an image over a mounted filesystem corrupts it and can crash the
system, so toolbelt refuses to continue.

## Things you can try:
- Unmount every partition of the device first:
~~~
$ lsblk /dev/sdX
$ sudo umount /dev/sdX1
~~~
- Double-check that you picked the right device`,
	}

	destinationExistsIssue = &Issue{
		id: DestinationExistsId,
		mdMsg: `
# Destination already exists!

toolbelt never extracts into an existing directory, so an archive can not
silently overwrite or mix with files you already have.

## Things you can try:
- Remove or rename the existing directory
- Choose another destination with --dest`,
	}

	invalidCropExpressionIssue = &Issue{
		id: InvalidCropExpressionId,
		mdMsg: `
# Invalid crop expression!

A crop expression must use exactly one of these forms:

| form | example | meaning |
|------|---------|---------|
| WxH+X+Y | 640x480+10+20 | size and top-left offset |
| X1,Y1-X2,Y2 | 10,20-650,500 | top-left and bottom-right corners |
| L:T:R:B | 5:0:5:40 | pixels to remove from each edge |

Numbers are non-negative integers without spaces.`,
		docLinks: []HttpLink{"https://imagemagick.org/script/command-line-processing.php#geometry"},
	}

	unsupportedArchiveIssue = &Issue{
		id: UnsupportedArchiveId,
		mdMsg: `
# Unsupported archive type!

The file name suffix does not match any archive format toolbelt knows.

## Supported suffixes:
.tar .tar.gz .tgz .tar.bz2 .tbz2 .tbz .tar.xz .txz .tar.zst .tzst
.zip .jar .7z .rar .gz .bz2 .xz .zst`,
	}

	noDisplayIssue = &Issue{
		id: NoDisplayId,
		mdMsg: `
# No graphical session found!

xsel talks to an X11 server, but neither DISPLAY nor WAYLAND_DISPLAY is set.

## Things you can try:
- Run the command from a terminal inside your desktop session
- Over ssh, enable X11 forwarding with ssh -X`,
	}

	platformNotSupportedIssue = &Issue{
		id: PlatformNotSupportedId,
		mdMsg: `
# Not supported on this platform!

This command relies on Linux-specific kernel interfaces (AF_PACKET sockets,
sysfs, child subreapers) and cannot run here.`,
	}

	issues = map[Id]*Issue{
		toolNotFoundIssue.Id():          toolNotFoundIssue,
		toolFailedIssue.Id():            toolFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
		deviceMountedIssue.Id():         deviceMountedIssue,
		destinationExistsIssue.Id():     destinationExistsIssue,
		invalidCropExpressionIssue.Id(): invalidCropExpressionIssue,
		unsupportedArchiveIssue.Id():    unsupportedArchiveIssue,
		noDisplayIssue.Id():             noDisplayIssue,
		platformNotSupportedIssue.Id():  platformNotSupportedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
