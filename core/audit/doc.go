// Package audit decides whether a mod's declared installation footprint is
// present and current inside an SPT installation.
//
// Primary paths are plugin files or folders under BepInEx/plugins and only
// need to exist. Managed paths are server mods under user/mods; each must
// exist and carry a package.json whose SPT compatibility field satisfies the
// target version. Every footprint entry must pass. Filesystem problems never
// surface as errors: they make the check fail.
package audit
