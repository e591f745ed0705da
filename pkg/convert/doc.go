// Package convert drives batch conversion of effect files.
//
// The direction of each conversion follows from the input extension:
//
//   - name.vfx converts to name.vfx.xml
//   - name.vfx.xml (any .xml) converts to name.vfx, the .xml stripped
//
// Other inputs are skipped. Each file succeeds or fails on its own; a
// failure is recorded in its [Result] and the batch moves on. Outputs are
// written through a temporary file and renamed into place, so a failed
// conversion never leaves a partial output behind.
//
// # Usage
//
//	codec, err := convert.LoadCodec(ctx, cfg, fileCache, logger)
//	runner := convert.NewRunner(codec, logger)
//	results := runner.Run(ctx, paths)
//	if err := runner.WriteHashDumps(cfg.HashDumpDir); err != nil {
//	    return err
//	}
//
// While converting binaries, the runner collects every string and path
// hash that no dictionary resolves. [Runner.WriteHashDumps] writes them out
// so they can be cracked and added to the dictionaries.
package convert
