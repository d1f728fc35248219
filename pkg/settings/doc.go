// Package settings persists the attendance tool's configuration document:
// roster names, recipients, sender, obfuscated credential, header and footer.
//
// A Codec pairs a wire Format (JSON or YAML) with a Storage backend (local
// file, S3 object or Redis key). Loading decodes the whole document before
// returning it, so a failed load never yields a half-filled Document.
//
//	codec, err := settings.Open(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer codec.Close()
//
//	doc, err := codec.Load(ctx)
//	if errors.Is(err, settings.ErrUnreadable) {
//	    // start with a blank document
//	}
//
// The credential is stored base64-encoded under "password_encoded". This is
// obfuscation against casual reading, not encryption.
//
// The "recipients" key is read either as an array of addresses or as an
// object whose keys are the addresses, and is always written as an array.
package settings
