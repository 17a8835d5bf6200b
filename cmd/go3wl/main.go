package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/plan-systems/klog"
)

func main() {

	flag.Set("logtostderr", "true")
	flag.Set("v", "2")

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()

	pathname := flag.Arg(0)
	switch filepath.Ext(pathname) {
	case ".yaml", ".yml":
		err := runKernelFile(pathname, os.Stdout)
		if err != nil {
			klog.Errorf("%s: %v", pathname, err)
			klog.Flush()
			os.Exit(1)
		}
	default:
		go_gpython(pathname)
	}

	klog.Flush()
}
